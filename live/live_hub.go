package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/hotel-ops-app/models"
)

// Event types
const (
	EventRoomUpdate        = "room_update"
	EventRoomCreate        = "room_create"
	EventRoomDelete        = "room_delete"
	EventHousekeepingNotif = "housekeeping_notification"
	EventRequestCreate     = "request_create"
	EventRequestUpdate     = "request_update"
	EventRequestEscalated  = "request_escalated"
	EventMaintenanceUpdate = "maintenance_update"
	EventAssignmentUpdate  = "assignment_update"
	EventAuditComplete     = "night_audit_complete"
	EventDashboardUpdate   = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	role    string
	hotelID uint
}

// Hub menampung semua client dashboard (reception, housekeeping, manager)
// dan menyiarkan event per hotel.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]client),
}

// RegisterClient -> menambahkan connection ke set dengan role & hotel
func RegisterClient(conn *websocket.Conn, role string, hotelID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = client{role: role, hotelID: hotelID}
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastRoomUpdate -> menyiarkan perubahan status room beserta
// statistik dashboard terbaru
func BroadcastRoomUpdate(room models.Room, stats interface{}) {
	broadcast(room.HotelID, Message{
		Event: EventRoomUpdate,
		Data: map[string]interface{}{
			"room":  room,
			"stats": stats,
		},
	})
}

// BroadcastHousekeepingNotification -> notifikasi ke dashboard housekeeping
func BroadcastHousekeepingNotification(hotelID uint, notif models.Notification) {
	broadcast(hotelID, Message{
		Event: EventHousekeepingNotif,
		Data:  notif,
	})
}

// BroadcastRequestCreate -> guest request baru masuk
func BroadcastRequestCreate(request models.GuestRequest) {
	broadcast(request.HotelID, Message{
		Event: EventRequestCreate,
		Data:  request,
	})
}

// BroadcastRequestEscalated -> request pending terlalu lama
func BroadcastRequestEscalated(request models.GuestRequest) {
	broadcast(request.HotelID, Message{
		Event: EventRequestEscalated,
		Data:  request,
	})
}

// BroadcastMaintenanceUpdate -> perubahan maintenance record
func BroadcastMaintenanceUpdate(record models.MaintenanceRecord) {
	broadcast(record.HotelID, Message{
		Event: EventMaintenanceUpdate,
		Data:  record,
	})
}

// BroadcastMessage -> event bebas (dipakai controller untuk stats dsb)
func BroadcastMessage(hotelID uint, msg Message) {
	broadcast(hotelID, msg)
}

func broadcast(hotelID uint, msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling live message: %v", err)
		return
	}

	for conn, cl := range hub.clients {
		if hotelID != 0 && cl.hotelID != hotelID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Error broadcasting to client: %v", err)
			conn.Close()
			delete(hub.clients, conn)
		}
	}
}
