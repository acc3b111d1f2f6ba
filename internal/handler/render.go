package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gobid/auctionhouse/internal/domain"
	"github.com/gobid/auctionhouse/internal/usecase"
	"github.com/gobid/auctionhouse/internal/web"
)

// viewData is the single bag every template renders from. Only the fields a
// page uses are populated.
type viewData struct {
	Identity   *Identity
	Message    string
	Categories []domain.Category
	Category   *domain.Category
	Listings   []domain.Listing
	Detail     *usecase.ListingDetail
	Form       map[string]string
}

var pageNames = []string{"index", "listing", "login", "register", "create", "watchlist", "error"}

// Renderer executes the embedded templates. Each page is parsed together with
// the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses all page templates up front.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(web.Templates,
			"templates/layout.gohtml",
			fmt.Sprintf("templates/%s.gohtml", name),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %q: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes a page with the given status.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data viewData) {
	tmpl, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		rd.logger.Error("failed to render template", "page", page, "error", err)
	}
}
