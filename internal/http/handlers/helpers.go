package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/valyala/fasthttp"

	dbpkg "lingoadmin/internal/db"
	httpctx "lingoadmin/internal/http/ctx"
	"lingoadmin/internal/listview"
)

// MustUser returns the current user from context, or sends 401 and returns (nil, false).
func MustUser(ctx *fasthttp.RequestCtx) (*dbpkg.User, bool) {
	user, ok := httpctx.UserFromCtx(ctx)
	if !ok || user == nil {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetBodyString("unauthorized")
		return nil, false
	}
	return user, true
}

func jsonResponse(ctx *fasthttp.RequestCtx, data any) {
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(data)
	ctx.SetBody(body)
}

func errResponse(ctx *fasthttp.RequestCtx, code int, msg string) {
	ctx.SetStatusCode(code)
	ctx.SetBodyString(msg)
}

// validationResponse reports field-level validation failures the way the
// dashboard forms expect them: 422 with a field-to-message map.
func validationResponse(ctx *fasthttp.RequestCtx, errs map[string]string) {
	ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
	jsonResponse(ctx, map[string]any{"errors": errs})
}

// pathID reads the {id} route parameter as a positive integer.
func pathID(ctx *fasthttp.RequestCtx) (uint, bool) {
	idVal := ctx.UserValue("id")
	if idVal == nil {
		errResponse(ctx, fasthttp.StatusBadRequest, "id required")
		return 0, false
	}
	idStr, ok := idVal.(string)
	if !ok {
		errResponse(ctx, fasthttp.StatusBadRequest, "invalid id")
		return 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		errResponse(ctx, fasthttp.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseListSpec reads the shared list query parameters (q, category,
// sort, dir, page, page_size) used by every list endpoint.
func parseListSpec(ctx *fasthttp.RequestCtx, defaultSort string) listview.Spec {
	spec := listview.Spec{
		Query:     string(ctx.QueryArgs().Peek("q")),
		Category:  string(ctx.QueryArgs().Peek("category")),
		SortField: defaultSort,
		Page:      1,
		PageSize:  20,
	}
	if spec.Category == "" {
		spec.Category = listview.CategoryAll
	}
	if s := string(ctx.QueryArgs().Peek("sort")); s != "" {
		spec.SortField = s
	}
	spec.Descending = string(ctx.QueryArgs().Peek("dir")) == "desc"
	if s := string(ctx.QueryArgs().Peek("page")); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			spec.Page = n
		}
	}
	if s := string(ctx.QueryArgs().Peek("page_size")); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			if n > 200 {
				n = 200
			}
			spec.PageSize = n
		}
	}
	return spec
}

// listResponse is the common envelope for paginated list endpoints.
func listResponse[V any](ctx *fasthttp.RequestCtx, view listview.View[V]) {
	jsonResponse(ctx, map[string]any{
		"items":      view.Page,
		"total":      len(view.All),
		"page":       view.PageNum,
		"totalPages": view.TotalPages,
	})
}

// decodeBody unmarshals the request body into dst, answering 400 on
// malformed JSON.
func decodeBody(ctx *fasthttp.RequestCtx, dst any) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
