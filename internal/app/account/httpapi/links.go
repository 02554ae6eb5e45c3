package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"codehub.local/internal/app/account"
	"codehub.local/internal/app/account/audit"
)

type addLinkRequest struct {
	Username string `json:"username"`
	ShareID  string `json:"shareId"`
	Title    string `json:"title"`
}

// NewAddLinkHandler 不存在才追加；同一账户重复上报同一 shareId 是静默幂等
func NewAddLinkHandler(users UserStore, links LinkStore, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addLinkRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Username == "" || req.ShareID == "" || req.Title == "" {
			writeMsg(w, http.StatusBadRequest, "Missing required fields: username, shareId, or title")
			return
		}
		acc, err := users.FindByUsername(r.Context(), req.Username)
		if err != nil {
			if errors.Is(err, account.ErrUserNotFound) {
				writeMsg(w, http.StatusNotFound, "User not found")
				return
			}
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		added, err := links.Add(r.Context(), acc.ID, req.ShareID, req.Title)
		if err != nil {
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		if added {
			rec.Record(r.Context(), acc, audit.ActionUpdate)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type linksResponse struct {
	SharedLinks []account.SharedLink `json:"sharedLinks"`
}

func NewListLinksHandler(users UserStore, links LinkStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := mustAccountID(w, r)
		if !ok {
			return
		}
		if _, err := users.FindByID(r.Context(), id); err != nil {
			if errors.Is(err, account.ErrUserNotFound) {
				writeMsg(w, http.StatusNotFound, "User not found")
				return
			}
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		list, err := links.ListByUser(r.Context(), id)
		if err != nil {
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		writeJSON(w, http.StatusOK, linksResponse{SharedLinks: list})
	}
}

type removeLinkRequest struct {
	ShareID string `json:"shareId"`
}

// NewRemoveLinkHandler 免登录、只凭 shareId 的删除路径。
// 过期文件服务删掉内容后从这里同步注册表，调用方拿不出用户 token。
// 部署方可用 LINK_SERVICE_KEY 把这条路径锁给可信服务（见路由处的 ServiceKey）。
func NewRemoveLinkHandler(users UserStore, links LinkStore, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req removeLinkRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.ShareID == "" {
			writeMsg(w, http.StatusBadRequest, "ShareId is required")
			return
		}
		ownerID, err := links.OwnerByShareID(r.Context(), req.ShareID)
		if err != nil {
			if errors.Is(err, account.ErrLinkNotFound) {
				writeMsg(w, http.StatusNotFound, "Shared link not found")
				return
			}
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		if _, err := links.RemoveGlobal(r.Context(), req.ShareID); err != nil {
			if errors.Is(err, account.ErrLinkNotFound) {
				writeMsg(w, http.StatusNotFound, "Shared link not found")
				return
			}
			writeMsg(w, http.StatusInternalServerError, "Server error")
			return
		}
		if acc, err := users.FindByID(r.Context(), ownerID); err == nil {
			rec.Record(r.Context(), acc, audit.ActionUpdate)
		}
		writeMsg(w, http.StatusOK, "Shared link deleted successfully")
	}
}

// NewRemoveOwnLinkHandler token 可选：带 token 删自己的，不带就按 shareId 全局反查
func NewRemoveOwnLinkHandler(users UserStore, links LinkStore, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shareID := chi.URLParam(r, "shareId")

		var ownerID int64
		if id, ok := tryAccountID(r); ok {
			ownerID = id
			if _, err := users.FindByID(r.Context(), id); err != nil {
				writeMsg(w, http.StatusNotFound, "User or Shared link not found")
				return
			}
			if err := links.RemoveByOwner(r.Context(), id, shareID); err != nil {
				if errors.Is(err, account.ErrLinkNotFound) {
					writeMsg(w, http.StatusNotFound, "Shared link not found")
					return
				}
				writeMsg(w, http.StatusInternalServerError, "Server error")
				return
			}
		} else {
			id, err := links.OwnerByShareID(r.Context(), shareID)
			if err != nil {
				if errors.Is(err, account.ErrLinkNotFound) {
					writeMsg(w, http.StatusNotFound, "User or Shared link not found")
					return
				}
				writeMsg(w, http.StatusInternalServerError, "Server error")
				return
			}
			ownerID = id
			if _, err := links.RemoveGlobal(r.Context(), shareID); err != nil {
				if errors.Is(err, account.ErrLinkNotFound) {
					writeMsg(w, http.StatusNotFound, "Shared link not found")
					return
				}
				writeMsg(w, http.StatusInternalServerError, "Server error")
				return
			}
		}

		if acc, err := users.FindByID(r.Context(), ownerID); err == nil {
			rec.Record(r.Context(), acc, audit.ActionUpdate)
		}
		writeMsg(w, http.StatusOK, "Shared link deleted successfully")
	}
}
