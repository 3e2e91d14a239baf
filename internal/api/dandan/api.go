package dandan

import (
	"danmu-hub/internal/api"
	"danmu-hub/internal/service"
	"danmu-hub/internal/utils"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler dandanplay风格的只读接口 搜索 剧集列表 弹幕
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

var apiLogger = utils.GetComponentLogger("dandan-api")

func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		keyword = r.URL.Query().Get("anime")
	}
	apiLogger.Info("search api requested", "keyword", keyword)

	result := h.svc.SearchAnime(keyword)
	api.ResponseJSON(w, http.StatusOK, result)
}

func (h *Handler) BangumiHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "animeId")
	numId, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		api.ResponseJSON(w, http.StatusBadRequest, map[string]string{})
		return
	}

	result := h.svc.Bangumi(numId)
	if result.Bangumi == nil {
		api.ResponseJSON(w, http.StatusNotFound, result)
		return
	}
	api.ResponseJSON(w, http.StatusOK, result)
}

func (h *Handler) CommentHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	id := chi.URLParam(r, "id")

	numId, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		api.ResponseJSON(w, http.StatusBadRequest, map[string]string{})
		return
	}

	// TODO 这些参数暂时不处理
	query := r.URL.Query()
	query.Get("from")        // int64
	query.Get("withRelated") // bool
	query.Get("chConvert")   // bool

	apiLogger.Info("comment api requested", "token", token, "id", id)

	comment := h.svc.Comments(numId)
	api.ResponseJSON(w, http.StatusOK, comment)
}
