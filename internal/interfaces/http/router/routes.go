// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 消息中继，浏览器端的主要入口
	v1.POST("/message", h.Message.Relay)

	// 诗词获取
	poems := v1.Group("/poems")
	{
		poems.GET("/random", h.Poem.Random)
		poems.GET("/category/*category", h.Poem.ByCategory)
		poems.GET("/index/:index", h.Poem.ByIndex)
	}

	// 偏好状态
	state := v1.Group("/state")
	{
		state.GET("/index", h.State.GetIndex)
		state.PUT("/index", h.State.SetIndex)
		state.GET("/language", h.State.GetLanguage)
		state.PUT("/language", h.State.SetLanguage)
	}

	// 取诗历史
	history := v1.Group("/history")
	{
		history.GET("/recent", h.History.Recent)
	}
}
