package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mogbrew/internal/catalog"
	"github.com/mogbrew/internal/crew"
)

type selectUserPayload struct {
	UserID string `json:"user_id"`
}

// ListCrew 返回固定成员名单
func (a *API) ListCrew(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"crew": crew.All()})
}

// ListCatalog 返回啤酒与容器目录
func (a *API) ListCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"beers":      catalog.Beers(),
		"containers": catalog.Containers(),
	})
}

// SelectUser 在会话中记住当前选中的成员
func (a *API) SelectUser(c *gin.Context) {
	var payload selectUserPayload
	if !bindJSON(c, &payload, msgUserIDRequired) {
		return
	}

	member, ok := crew.Lookup(crew.Normalize(payload.UserID))
	if !ok {
		respondError(c, http.StatusBadRequest, "unknown user")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, member.ID)
	if err := session.Save(); err != nil {
		a.recordServerError(c, "session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": member})
}

// CurrentUser 返回会话中选中的成员，没有时返回 404
func (a *API) CurrentUser(c *gin.Context) {
	id, _ := sessions.Default(c).Get(sessionUserKey).(string)
	member, ok := crew.Lookup(id)
	if !ok {
		respondError(c, http.StatusNotFound, "no user selected")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": member})
}
