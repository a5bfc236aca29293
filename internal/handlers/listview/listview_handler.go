// internal/handlers/listview/listview_handler.go
package listview

import (
	"net/http"
	"strconv"

	"landdeals-console/internal/domain/listview"
	"landdeals-console/internal/middleware"
	"landdeals-console/internal/pkg/response"
	listviewUsecase "landdeals-console/internal/service/listview"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ListViewHandler struct {
	listViewService *listviewUsecase.ListViewService
	logger          *zap.Logger
}

func NewListViewHandler(listViewService *listviewUsecase.ListViewService, logger *zap.Logger) *ListViewHandler {
	return &ListViewHandler{
		listViewService: listViewService,
		logger:          logger,
	}
}

// OpenView starts a synchronized owners or investors list for the session.
func (h *ListViewHandler) OpenView(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	var req listview.OpenViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	snap, err := h.listViewService.Open(c.Request.Context(), sess, &req)
	if err != nil {
		response.FromError(c, "failed to open view", err)
		return
	}

	response.Success(c, http.StatusCreated, "view opened", snap)
}

func (h *ListViewHandler) GetView(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	snap, err := h.listViewService.Get(sess.ID, c.Param("viewId"))
	if err != nil {
		response.FromError(c, "failed to load view", err)
		return
	}

	response.Success(c, http.StatusOK, "view retrieved", snap)
}

// Search records the term right away. The fetch runs after the debounce and
// its result arrives over the websocket.
func (h *ListViewHandler) Search(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	var req listview.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	snap, err := h.listViewService.Search(sess.ID, c.Param("viewId"), req.Term)
	if err != nil {
		response.FromError(c, "failed to search", err)
		return
	}

	response.Success(c, http.StatusAccepted, "search scheduled", snap)
}

func (h *ListViewHandler) Sort(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	var req listview.SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	snap, err := h.listViewService.Sort(c.Request.Context(), sess.ID, c.Param("viewId"), &req)
	if err != nil {
		response.FromError(c, "failed to sort", err)
		return
	}

	response.Success(c, http.StatusOK, "view sorted", snap)
}

func (h *ListViewHandler) Filter(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	var req listview.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	snap, err := h.listViewService.Filter(c.Request.Context(), sess.ID, c.Param("viewId"), req.Flagged)
	if err != nil {
		response.FromError(c, "failed to filter", err)
		return
	}

	response.Success(c, http.StatusOK, "view filtered", snap)
}

func (h *ListViewHandler) Page(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	var req listview.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	snap, err := h.listViewService.Page(c.Request.Context(), sess.ID, c.Param("viewId"), req.Page)
	if err != nil {
		response.FromError(c, "failed to change page", err)
		return
	}

	response.Success(c, http.StatusOK, "page changed", snap)
}

func (h *ListViewHandler) Refresh(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	snap, err := h.listViewService.Refresh(c.Request.Context(), sess.ID, c.Param("viewId"))
	if err != nil {
		response.FromError(c, "failed to refresh", err)
		return
	}

	response.Success(c, http.StatusOK, "view refreshed", snap)
}

// ToggleFlag flips the starred flag of one record in the view.
func (h *ListViewHandler) ToggleFlag(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	recordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid record ID", err)
		return
	}

	snap, err := h.listViewService.Toggle(c.Request.Context(), sess, c.Param("viewId"), recordID)
	if err != nil {
		response.FromError(c, "failed to toggle flag", err)
		return
	}

	response.Success(c, http.StatusOK, "flag toggled", snap)
}

// DeleteRecord removes a record. The caller must pass confirm=true.
func (h *ListViewHandler) DeleteRecord(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	recordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid record ID", err)
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	snap, err := h.listViewService.Delete(c.Request.Context(), sess, c.Param("viewId"), recordID, confirmed)
	if err != nil {
		response.FromError(c, "failed to delete record", err)
		return
	}

	response.Success(c, http.StatusOK, "record deleted", snap)
}

func (h *ListViewHandler) CloseView(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	if err := h.listViewService.Close(sess.ID, c.Param("viewId")); err != nil {
		response.FromError(c, "failed to close view", err)
		return
	}

	response.Success(c, http.StatusOK, "view closed", nil)
}
