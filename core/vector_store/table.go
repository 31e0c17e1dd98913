package vector_store

import (
	"encoding/json"

	"github.com/bytedance/sonic"
	"github.com/tahaky/uymbot-docservice/core/errors"
)

// Table is one flat row-group of a store response: ids, documents and
// metadatas aligned by index.
type Table struct {
	IDs       []string
	Documents []string
	Metadatas []map[string]interface{}
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.IDs)
}

// Row returns the record at index i. Documents and metadatas shorter
// than ids are tolerated; missing cells come back zero-valued.
func (t *Table) Row(i int) Record {
	rec := Record{ID: t.IDs[i]}
	if i < len(t.Documents) {
		rec.Document = t.Documents[i]
	}
	if i < len(t.Metadatas) {
		rec.Metadata = t.Metadatas[i]
	}
	return rec
}

// QueryResult is a normalized similarity query response: one row-group
// per issued query, ranked by similarity descending within each group.
type QueryResult struct {
	Groups []Table
}

// First returns the first query's row-group, or an empty table when
// the store returned no groups.
func (r *QueryResult) First() *Table {
	if r == nil || len(r.Groups) == 0 {
		return &Table{}
	}
	return &r.Groups[0]
}

// tablePayload is the raw wire shape shared by get and query
// responses. The arrays are either flat (get) or nested one level
// (query), so they are decoded lazily.
type tablePayload struct {
	IDs       json.RawMessage `json:"ids"`
	Documents json.RawMessage `json:"documents"`
	Metadatas json.RawMessage `json:"metadatas"`
}

// flatTable decodes the payload as a single flat row-group.
func (p *tablePayload) flatTable() (*Table, error) {
	t := &Table{}
	if err := decodeCell(p.IDs, &t.IDs); err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreDecode, "failed to decode ids: %v", err)
	}
	if err := decodeCell(p.Documents, &t.Documents); err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreDecode, "failed to decode documents: %v", err)
	}
	if err := decodeCell(p.Metadatas, &t.Metadatas); err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreDecode, "failed to decode metadatas: %v", err)
	}
	return t, nil
}

// queryResult decodes the payload as a query response. The store nests
// query arrays one level even for a single query, but a flat response
// is tolerated and wrapped into a single row-group.
func (p *tablePayload) queryResult() (*QueryResult, error) {
	ids, err := stringRows(p.IDs)
	if err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreDecode, "failed to decode query ids: %v", err)
	}
	docs, err := stringRows(p.Documents)
	if err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreDecode, "failed to decode query documents: %v", err)
	}
	metas, err := metadataRows(p.Metadatas)
	if err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreDecode, "failed to decode query metadatas: %v", err)
	}

	result := &QueryResult{Groups: make([]Table, len(ids))}
	for i := range ids {
		result.Groups[i].IDs = ids[i]
		if i < len(docs) {
			result.Groups[i].Documents = docs[i]
		}
		if i < len(metas) {
			result.Groups[i].Metadatas = metas[i]
		}
	}
	return result, nil
}

// stringRows normalizes a string array cell that is either nested
// ([["a"]]) or flat (["a"]) into nested form.
func stringRows(raw json.RawMessage) ([][]string, error) {
	if isEmptyCell(raw) {
		return nil, nil
	}
	var nested [][]string
	if err := sonic.Unmarshal(raw, &nested); err == nil {
		return nested, nil
	}
	var flat []string
	if err := sonic.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	return [][]string{flat}, nil
}

// metadataRows normalizes a metadata array cell, nested or flat.
func metadataRows(raw json.RawMessage) ([][]map[string]interface{}, error) {
	if isEmptyCell(raw) {
		return nil, nil
	}
	var nested [][]map[string]interface{}
	if err := sonic.Unmarshal(raw, &nested); err == nil {
		return nested, nil
	}
	var flat []map[string]interface{}
	if err := sonic.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	return [][]map[string]interface{}{flat}, nil
}

func decodeCell(raw json.RawMessage, out interface{}) error {
	if isEmptyCell(raw) {
		return nil
	}
	return sonic.Unmarshal(raw, out)
}

func isEmptyCell(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
