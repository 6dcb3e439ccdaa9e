package generation

// System instruction for grounded answering. The model must answer only from
// the numbered context passages and cite them inline.
const groundedSystemInstruction = `You are a precise assistant that answers questions using only the provided context passages.

Rules:
- Use ONLY the information in the numbered context passages below. Do not use outside knowledge.
- Cite passages inline using their bracketed numbers, for example [1] or [2][3].
- If the context does not contain enough information to answer, say so plainly instead of guessing.
- Keep the answer concise and factual.`

const groundedPromptTemplate = `Context passages:

%s

Question: %s

Answer using only the context above, with [n] citations.`
