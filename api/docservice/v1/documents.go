package v1

import (
	"github.com/gogf/gf/v2/frame/g"
	"github.com/tahaky/uymbot-docservice/internal/model/entity"
)

type DocumentCreateReq struct {
	g.Meta   `path:"/v1/documents" method:"post" tags:"documents" summary:"Create a new document"`
	Title    string                 `p:"title" v:"required|length:1,255" dc:"document title"`
	Content  string                 `p:"content" v:"required" dc:"document text content"`
	Metadata map[string]interface{} `p:"metadata" dc:"optional key-value metadata"`
}

type DocumentCreateRes struct {
	g.Meta `mime:"application/json"`
	Chunks []entity.Document `json:"chunks" dc:"one record per stored chunk, in split order"`
}

type DocumentsListReq struct {
	g.Meta `path:"/v1/documents" method:"get" tags:"documents" summary:"List all documents"`
	Limit  int `p:"limit" d:"100" v:"min:1|max:1000" dc:"max results"`
	Offset int `p:"offset" d:"0" v:"min:0" dc:"skip offset"`
}

type DocumentsListRes struct {
	g.Meta `mime:"application/json"`
	Data   []entity.Document `json:"data"`
}

type DocumentGetReq struct {
	g.Meta `path:"/v1/documents/{id}" method:"get" tags:"documents" summary:"Get a document by ID"`
	Id     string `p:"id" v:"required" dc:"chunk id"`
}

type DocumentGetRes struct {
	g.Meta `mime:"application/json"`
	*entity.Document
}

type DocumentUpdateReq struct {
	g.Meta   `path:"/v1/documents/{id}" method:"put" tags:"documents" summary:"Update a document (partial update supported)"`
	Id       string                 `p:"id" v:"required" dc:"chunk id"`
	Title    *string                `p:"title" dc:"updated title; omit to keep existing"`
	Content  *string                `p:"content" dc:"updated text content; omit to keep existing"`
	Metadata map[string]interface{} `p:"metadata" dc:"updated metadata; omit to keep existing"`
}

type DocumentUpdateRes struct {
	g.Meta `mime:"application/json"`
	*entity.Document
}

type DocumentDeleteReq struct {
	g.Meta `path:"/v1/documents/{id}" method:"delete" tags:"documents" summary:"Delete a document"`
	Id     string `p:"id" v:"required" dc:"chunk id"`
}

type DocumentDeleteRes struct {
	g.Meta `mime:"application/json"`
}

type DocumentSearchReq struct {
	g.Meta   `path:"/v1/documents/search" method:"post" tags:"documents" summary:"Semantic similarity search"`
	Query    string `p:"query" v:"required" dc:"natural language search query"`
	NResults int    `p:"nResults" d:"5" v:"min:1|max:50" dc:"maximum number of results"`
}

type DocumentSearchRes struct {
	g.Meta `mime:"application/json"`
	Data   []entity.Document `json:"data" dc:"results ranked by similarity descending"`
}

type DocumentImportRagReq struct {
	g.Meta        `path:"/v1/documents/import/rag/{ragDocumentId}" method:"post" tags:"documents" summary:"Import a document from the RAG chunking/parser service"`
	RagDocumentId string                 `p:"ragDocumentId" v:"required|regex:^[0-9a-fA-F-]{36}$" dc:"UUID of the document in the RAG service"`
	Title         string                 `p:"title" dc:"override title; defaults to RAG document filename"`
	Metadata      map[string]interface{} `p:"metadata" dc:"extra metadata merged into the stored document"`
	JoinSeparator string                 `p:"joinSeparator" dc:"separator used when joining chunks; defaults to a blank line"`
}

type DocumentImportRagRes struct {
	g.Meta `mime:"application/json"`
	Chunks []entity.Document `json:"chunks" dc:"one record per stored chunk, in split order"`
}

type HealthReq struct {
	g.Meta `path:"/v1/documents/health" method:"get" tags:"documents" summary:"Health check"`
}

type HealthRes struct {
	g.Meta `mime:"application/json"`
	Status string `json:"status"`
}
