package entity

// Document is one chunk stored in the vector database, as surfaced to
// API callers. Metadata never contains the reserved title key; the
// title is exposed through the Title field instead.
type Document struct {
	Id       string                 `json:"id"       dc:"chunk id (UUID)"`
	Title    string                 `json:"title"    dc:"title of the owning document"`
	Content  string                 `json:"content"  dc:"chunk text content"`
	Metadata map[string]interface{} `json:"metadata" dc:"key-value metadata"`
}
