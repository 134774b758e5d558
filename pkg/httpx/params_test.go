package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// Утилита для создания *gin.Context с query-строкой
func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/?"+rawQuery, http.NoBody)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

func TestClampInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		v, min, max int
		want        int
	}{
		{"below_min", 0, 1, 10, 1},
		{"above_max", 11, 1, 10, 10},
		{"inside", 5, 1, 10, 5},
		{"equal_min", 1, 1, 10, 1},
		{"equal_max", 10, 1, 10, 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := httpx.ClampInt(tt.v, tt.min, tt.max); got != tt.want {
				t.Fatalf("ClampInt(%d,%d,%d) = %d, want %d", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestParseLimitOffset_Defaults_NoQuery(t *testing.T) {
	t.Parallel()

	{
		c := ctxWithQuery("")
		limit, offset := httpx.ParseLimitOffset(c, 20, 50)
		if limit != 20 || offset != 0 {
			t.Fatalf("got limit=%d offset=%d, want 20/0", limit, offset)
		}
	}

	{
		c := ctxWithQuery("")
		limit, offset := httpx.ParseLimitOffset(c, 100, 50)
		if limit != 50 || offset != 0 {
			t.Fatalf("got limit=%d offset=%d, want 50/0", limit, offset)
		}
	}

	{
		c := ctxWithQuery("")
		limit, offset := httpx.ParseLimitOffset(c, 0, 50)
		if limit != 1 || offset != 0 {
			t.Fatalf("got limit=%d offset=%d, want 1/0", limit, offset)
		}
	}
}

func TestParseLimitOffset_QueryProvided(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rawQuery     string
		defaultLimit int
		maxLimit     int
		wantLimit    int
		wantOffset   int
	}{
		// корректные значения
		{"ok_both", "limit=25&offset=10", 20, 50, 25, 10},
		{"ok_only_limit", "limit=5", 20, 50, 5, 0},
		{"ok_only_offset", "offset=7", 20, 50, 20, 7},

		// клампинг limit
		{"limit_zero_clamped_to_min", "limit=0", 20, 50, 1, 0},
		{"limit_negative_clamped_to_min", "limit=-5", 20, 50, 1, 0},
		{"limit_above_max_clamped", "limit=999", 20, 50, 50, 0},

		// нечисловые значения
		{"limit_non_int_uses_default", "limit=foo", 20, 50, 20, 0},
		{"offset_non_int_ignored", "offset=bar", 20, 50, 20, 0},

		// отрицательный offset игнорируется
		{"offset_negative_ignored", "limit=10&offset=-3", 20, 50, 10, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := ctxWithQuery(tt.rawQuery)
			limit, offset := httpx.ParseLimitOffset(c, tt.defaultLimit, tt.maxLimit)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("got limit=%d offset=%d, want %d/%d (query=%q)",
					limit, offset, tt.wantLimit, tt.wantOffset, tt.rawQuery)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rawQuery   string
		want       httpx.Page
		wantOffset int
	}{
		{"no_page", "", httpx.Page{Number: 1, Limit: 20}, 0},
		{"limit_only_not_paged", "limit=5", httpx.Page{Number: 1, Limit: 5, Limited: true}, 0},
		{"limit_garbage_ignored", "limit=abc", httpx.Page{Number: 1, Limit: 20}, 0},
		{"page_and_limit", "page=3&limit=10", httpx.Page{Number: 3, Limit: 10, Paged: true, Limited: true}, 20},
		{"page_default_limit", "page=2", httpx.Page{Number: 2, Limit: 20, Paged: true}, 20},
		{"page_zero_to_first", "page=0", httpx.Page{Number: 1, Limit: 20, Paged: true}, 0},
		{"page_garbage_to_first", "page=abc", httpx.Page{Number: 1, Limit: 20, Paged: true}, 0},
		{"limit_clamped", "page=1&limit=500", httpx.Page{Number: 1, Limit: 100, Paged: true, Limited: true}, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := httpx.ParsePage(ctxWithQuery(tt.rawQuery), 20, 100)
			if got != tt.want {
				t.Fatalf("ParsePage(%q) = %+v, want %+v", tt.rawQuery, got, tt.want)
			}
			if got.Offset() != tt.wantOffset {
				t.Fatalf("Offset() = %d, want %d", got.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestPaginationHeaders(t *testing.T) {
	t.Parallel()

	if h := httpx.PaginationHeaders(httpx.Page{Number: 1, Limit: 20}, 55); h != nil {
		t.Fatalf("non-paged request must not get headers, got %v", h)
	}

	// limit без page — выборка обрезана, клиент должен это видеть
	limited := httpx.PaginationHeaders(httpx.Page{Number: 1, Limit: 20, Limited: true}, 55)
	if limited[httpx.HeaderTotalCount] != "55" || limited[httpx.HeaderTotalPages] != "3" {
		t.Fatalf("limited request must get headers, got %v", limited)
	}

	h := httpx.PaginationHeaders(httpx.Page{Number: 2, Limit: 20, Paged: true}, 55)
	want := map[string]string{
		httpx.HeaderTotalCount: "55",
		httpx.HeaderPage:       "2",
		httpx.HeaderLimit:      "20",
		httpx.HeaderTotalPages: "3",
	}
	for k, v := range want {
		if h[k] != v {
			t.Fatalf("%s = %q, want %q", k, h[k], v)
		}
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	cases := []struct{ total, limit, want int }{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 0, 1},
	}
	for _, c := range cases {
		if got := httpx.TotalPages(c.total, c.limit); got != c.want {
			t.Fatalf("TotalPages(%d,%d) = %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}
