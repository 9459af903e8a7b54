// Package middleware 提供 HTTP 中间件
package middleware

import (
	"strings"

	"poem-tab-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// InstallIDHeader 安装标识头
	InstallIDHeader = "X-Install-ID"
	// DefaultInstallID 缺省安装标识
	DefaultInstallID = "default"
)

// InstallID 安装标识注入中间件
// 把浏览器扩展安装标识写入日志上下文，便于按安装维度排查
func InstallID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(InstallIDHeader))
		if id == "" {
			id = DefaultInstallID
		}

		c.Set("install_id", id)

		ctx := logger.WithContext(c.Request.Context(), logger.InstallIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
