package routes

import (
	ws "farmstay-server/websocket"
)

// dashboardHub is set once from main before the router starts serving
var dashboardHub *ws.Hub

// InitHub wires the dashboard event hub into the handlers
func InitHub(hub *ws.Hub) {
	dashboardHub = hub
}

func publish(eventType string, data interface{}) {
	if dashboardHub != nil {
		dashboardHub.Publish(eventType, data)
	}
}
