package response

import "fmt"

// ListEnvelope is the paginated list body: results plus absolute next and
// previous page URLs, null when there is no such page.
type ListEnvelope struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// NewListEnvelope builds the envelope for one page. baseURL is the absolute
// list URL; query parameters already on it (filters) are preserved.
func NewListEnvelope(results any, count int64, page, pageSize int, baseURL string) ListEnvelope {
	env := ListEnvelope{Count: count, Results: results}
	if int64(page*pageSize) < count {
		env.Next = pageURL(baseURL, page+1, pageSize)
	}
	if page > 1 {
		env.Previous = pageURL(baseURL, page-1, pageSize)
	}
	return env
}

func pageURL(baseURL string, page, pageSize int) *string {
	sep := "?"
	for _, r := range baseURL {
		if r == '?' {
			sep = "&"
			break
		}
	}
	u := fmt.Sprintf("%s%spage=%d&page_size=%d", baseURL, sep, page, pageSize)
	return &u
}
