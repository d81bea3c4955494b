// Package messages provides the typed model of an inference input transcript:
// messages with a role and an ordered list of heterogeneous content blocks,
// plus an optional system prompt.
//
// Design decisions:
//   - Closed sum type: ContentBlock is sealed with an unexported marker method
//   - Forward compatible: unknown block tags decode to UnknownBlock instead of failing
//   - Order preserving: structured values are kept as raw JSON after decoding
//   - JSON interop: every variant writes its own `type` tag on encoding
//   - Keyed usage: struct{} padding forces keyed initialization
//
// Block variants:
//   - StructuredText: template arguments, any structured value
//   - UnstructuredText: plain text
//   - MissingFunctionText: text without a function config
//   - RawText: text passed through untouched
//   - ToolCall: a tool invocation with JSON encoded arguments
//   - ToolResult: the output of a tool invocation
//   - File: an attachment resolved to a data URL
//   - FileError: an attachment that could not be retrieved
//
// Example usage:
//
//	msg := messages.Message{
//	    Role: messages.RoleUser,
//	    Content: messages.Content{
//	        messages.UnstructuredText{Text: "What is in this picture?"},
//	        messages.File{
//	            File:        messages.FileData{DataURL: "data:image/png;base64,...", MimeType: "image/png"},
//	            StoragePath: messages.StoragePath{Path: "observability/files/abc.png"},
//	        },
//	    },
//	}
package messages
