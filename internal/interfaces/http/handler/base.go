// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// InstallIDHeader 安装标识请求头
const InstallIDHeader = "X-Install-ID"

// DefaultInstallID 未携带安装标识时的默认值
const DefaultInstallID = "default"

// installID 从请求头解析安装标识
func installID(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(InstallIDHeader))
	if id == "" {
		return DefaultInstallID
	}
	return id
}
