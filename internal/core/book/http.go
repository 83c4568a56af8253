package book

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folio-app/folio/internal/platform/apperr"
	"github.com/folio-app/folio/internal/platform/constants"
	"github.com/folio-app/folio/internal/platform/ctxutil"
	requestutil "github.com/folio-app/folio/internal/platform/request"
	"github.com/folio-app/folio/internal/platform/respond"
	"github.com/folio-app/folio/pkg/convert"
	"github.com/folio-app/folio/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public; authentication only enriches request logging.
	router.Get("/", handler.listRecent)
	router.Get("/search", handler.searchBooks)
	router.Get("/isbn/{isbn}", handler.searchByISBN)
	router.Get("/{id}", handler.getBook)
}

// searchResponse is the payload of the search endpoint.
type searchResponse struct {
	Query   string  `json:"query"`
	Results []*Book `json:"results"`
	Count   int     `json:"count"`
}

func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	// A missing q parameter is a client error; a present-but-blank one is a
	// valid search that happens to match nothing.
	if !queryParams.Has(FieldQuery) {
		respond.Error(writer, request, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldQuery,
			Message: "This field is required",
		}))
		return
	}
	query := queryParams.Get(FieldQuery)

	options := SearchOptions{
		MaxResults:      convert.ToIntD(queryParams.Get(FieldMaxResults), constants.DefaultSearchMaxResults),
		IncludeExternal: convert.ToBoolD(queryParams.Get("include_external"), true),
	}

	if claims := requestutil.Claims(request); claims != nil {
		ctxutil.GetLogger(request.Context()).Debug("book_search_requested",
			slog.String("user_id", claims.UserID),
			slog.String("query", query),
		)
	}

	results, err := handler.service.SearchBooks(request.Context(), query, options)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, searchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	})
}

func (handler *Handler) searchByISBN(writer http.ResponseWriter, request *http.Request) {
	rawISBN := requestutil.Param(request, FieldISBN)

	record, err := handler.service.SearchByISBN(request.Context(), rawISBN)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	record, err := handler.service.GetBookByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) listRecent(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	records, total, err := handler.service.ListRecent(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
