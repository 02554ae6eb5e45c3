package httpapi

import (
	"github.com/go-chi/chi/v5"

	"codehub.local/internal/app/account"
	"codehub.local/internal/platform/auth"
	"codehub.local/internal/platform/httpmiddleware"
)

// RegisterRoutes 挂载账户 API。cmd/api 只负责组装和挂载，路由归业务模块自己管。
//
// 路径沿用既有前端/编辑器插件调用的老接口，不做 /v1 风格改名。
func RegisterRoutes(r chi.Router, users UserStore, links LinkStore, rec Recorder, ts auth.TokenService, linkServiceKey string) {
	r.Route("/api", func(api chi.Router) {
		// 无需认证
		api.Post("/register", NewRegisterHandler(users, rec))
		api.Post("/login", NewLoginHandler(users, rec, ts))

		// 编辑器后台上报，body 里带用户名
		api.Post("/generateCode/count", NewCountHandler(users, rec, account.CategoryGenerate))
		api.Post("/refactorCode/count", NewCountHandler(users, rec, account.CategoryRefactor))
		api.Post("/runCode/count", NewCountHandler(users, rec, account.CategoryRun))
		api.Post("/sharedLink/count", NewAddLinkHandler(users, links, rec))

		// 过期文件服务的免登录删除，可配共享密钥
		api.With(httpmiddleware.ServiceKey(linkServiceKey)).
			Delete("/sharedLink", NewRemoveLinkHandler(users, links, rec))

		// token 可选
		api.With(httpmiddleware.AuthOptional(ts)).
			Delete("/user/sharedLink/{shareId}", NewRemoveOwnLinkHandler(users, links, rec))

		// 需要登录
		api.Group(func(priv chi.Router) {
			priv.Use(httpmiddleware.AuthRequired(ts))
			priv.Get("/protected", NewProtectedHandler(users))
			priv.Put("/change-username", NewChangeUsernameHandler(users, rec))
			priv.Put("/change-email", NewChangeEmailHandler(users, rec))
			priv.Put("/change-password", NewChangePasswordHandler(users, rec, ts))
			priv.Delete("/account", NewDeleteAccountHandler(users, rec))
			priv.Post("/verify-password", NewVerifyPasswordHandler(users))
			priv.Post("/user/sharedLinks", NewListLinksHandler(users, links))
		})
	})
}
