package errors

// ErrCode is the business error code type.
type ErrCode int

const (
	// Generic errors 1000-1999
	ErrInvalidParameter ErrCode = 1001
	ErrInternalError    ErrCode = 1003
	ErrNotFound         ErrCode = 1004
	ErrOperationFailed  ErrCode = 1006

	// Embedding errors 2000-2999
	ErrEmbeddingFailed ErrCode = 2003
	ErrEmbeddingInput  ErrCode = 2004

	// Document errors 4000-4999
	ErrDocumentNotFound ErrCode = 4001
	ErrChunkingFailed   ErrCode = 4002

	// Vector store errors 5000-5999
	ErrVectorStoreInit   ErrCode = 5001
	ErrVectorSearch      ErrCode = 5002
	ErrVectorInsert      ErrCode = 5003
	ErrVectorDelete      ErrCode = 5004
	ErrVectorStoreCall   ErrCode = 5005
	ErrVectorStoreDecode ErrCode = 5006

	// RAG import service errors 6000-6999
	ErrRagServiceCall   ErrCode = 6001
	ErrRagServiceDecode ErrCode = 6002
)

// HTTPStatusCode maps the error code to an HTTP status code.
// Upstream failures (vector store, embedding API, RAG service) map to
// 502 so the boundary layer can tell them apart from internal errors.
func (e ErrCode) HTTPStatusCode() int {
	switch e {
	case ErrInvalidParameter, ErrEmbeddingInput:
		return 400
	case ErrNotFound, ErrDocumentNotFound:
		return 404
	case ErrEmbeddingFailed,
		ErrVectorStoreInit, ErrVectorSearch, ErrVectorInsert,
		ErrVectorDelete, ErrVectorStoreCall, ErrVectorStoreDecode,
		ErrRagServiceCall, ErrRagServiceDecode:
		return 502
	default:
		return 500
	}
}
