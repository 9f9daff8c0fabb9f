package handler

import "github.com/gin-gonic/gin"

// Routes are the groups a module mounts onto. Throttled is public with the
// per-IP login limiter; Authed requires any valid token; Admin requires role=admin.
type Routes struct {
	Public    *gin.RouterGroup
	Throttled *gin.RouterGroup
	Authed    *gin.RouterGroup
	Admin     *gin.RouterGroup
}

type idOut struct {
	ID string `json:"id"`
}
