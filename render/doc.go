// Package render normalizes the content blocks of an inference input transcript
// into descriptors and assembles them into a tree ready for presentation.
//
// Design decisions:
//   - Pure transform: no I/O, no shared state, every block is normalized independently
//   - Closed dispatch: a type switch over the block variants with a default arm for
//     forward compatibility
//   - Graceful degradation: tool call arguments that are not JSON are shown raw,
//     unknown blocks produce an Empty descriptor
//   - Visible failure: a system prompt that can't be serialized is replaced by a
//     SerializationError, the rest of the transcript is unaffected
//   - Explicit keys: every message and block carries its position for list identity
//
// Example usage:
//
//	tr := render.Assemble(messages.SystemText("You are a pirate"), input.Messages)
//	for _, msg := range tr.Messages() {
//	    for _, b := range msg.Blocks {
//	        if b.IsEmpty() {
//	            continue
//	        }
//	        // hand b.Descriptor to the leaf renderer for b.Descriptor.Kind()
//	    }
//	}
package render
