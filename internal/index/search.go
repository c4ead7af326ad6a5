package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/wingman-memory/internal/model"
)

// SearchParams holds parameters for searching the index.
type SearchParams struct {
	Query  string
	Kind   string
	// Handles filters to documents whose handle is any of these.
	Handles []string
	Limit  int
}

// Hit is one matching chunk together with the document it came from.
type Hit struct {
	model.Document
	Heading   string `json:"heading,omitempty"`
	Text      string `json:"text"`
	Seq       int    `json:"seq"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
}

// likeEscaper makes the query match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search finds chunks whose text or heading contains the query, ordered by
// document path then chunk order.
func (ix *Index) Search(ctx context.Context, p SearchParams) ([]Hit, error) {
	if strings.TrimSpace(p.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	like := "%" + likeEscaper.Replace(p.Query) + "%"
	where := []string{`(c.text LIKE ? ESCAPE '\' OR c.heading LIKE ? ESCAPE '\')`}
	args := []interface{}{like, like}

	if p.Kind != "" {
		where = append(where, "d.kind = ?")
		args = append(args, p.Kind)
	}
	if len(p.Handles) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(p.Handles)), ",")
		where = append(where, "d.handle IN ("+marks+")")
		for _, h := range p.Handles {
			args = append(args, h)
		}
	}

	query := fmt.Sprintf(`
		SELECT d.kind, d.handle, d.path, c.heading, c.text, c.seq, c.start_line, c.end_line
		FROM chunks c
		INNER JOIN documents d ON d.id = c.document_id
		WHERE %s
		ORDER BY d.path, c.seq
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := ix.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		var kind string
		if err := rows.Scan(&kind, &h.Handle, &h.Path, &h.Heading, &h.Text, &h.Seq, &h.StartLine, &h.EndLine); err != nil {
			return nil, err
		}
		h.Kind = model.Kind(kind)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
