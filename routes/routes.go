package routes

import (
	"github.com/gin-gonic/gin"

	"Polashi/controllers"
)

// SetupRoutes wires the REST surface. It is deliberately tiny: the real
// contract is the socket.io event set, mounted separately in services/socket_io.
func SetupRoutes(r *gin.Engine, directory controllers.RoomDirectory) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "healthy")
	})

	roomInfo := &controllers.RoomInfoController{Directory: directory}
	r.GET("/rooms/:code", roomInfo.GetRoomInfo)
}
