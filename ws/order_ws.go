package ws

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderHub fans order events out to live subscribers: the restaurant staff
// board subscribes per restaurant, the customer tracking screen per order.
type OrderHub struct {
	restClients  map[uint]map[*websocket.Conn]bool // restaurantID -> staff conns
	orderClients map[uint]map[*websocket.Conn]bool // orderID -> customer conns
	broadcast    chan OrderEvent
	register     chan Subscription
	unregister   chan Subscription
	mu           sync.Mutex
}

// Subscription ties one connection to either a restaurant feed or a single
// order feed. Unregistering exactly once per connection releases it.
type Subscription struct {
	Conn         *websocket.Conn
	RestaurantID uint // staff feed, 0 when tracking one order
	OrderID      uint // customer feed, 0 for the staff board
}

// OrderEvent is the payload written to subscribers on every change.
type OrderEvent struct {
	OrderID       uint      `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	RestaurantID  uint      `json:"restaurantId"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus,omitempty"`
	DriverID      *uint     `json:"driverId,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewOrderHub() *OrderHub {
	return &OrderHub{
		restClients:  make(map[uint]map[*websocket.Conn]bool),
		orderClients: make(map[uint]map[*websocket.Conn]bool),
		broadcast:    make(chan OrderEvent),
		register:     make(chan Subscription),
		unregister:   make(chan Subscription),
	}
}

// Run listens for register/unregister/broadcast until the process exits.
func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if sub.RestaurantID != 0 {
				if h.restClients[sub.RestaurantID] == nil {
					h.restClients[sub.RestaurantID] = make(map[*websocket.Conn]bool)
				}
				h.restClients[sub.RestaurantID][sub.Conn] = true
			}
			if sub.OrderID != 0 {
				if h.orderClients[sub.OrderID] == nil {
					h.orderClients[sub.OrderID] = make(map[*websocket.Conn]bool)
				}
				h.orderClients[sub.OrderID][sub.Conn] = true
			}
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if sub.RestaurantID != 0 {
				if _, ok := h.restClients[sub.RestaurantID][sub.Conn]; ok {
					delete(h.restClients[sub.RestaurantID], sub.Conn)
					sub.Conn.Close()
				}
			}
			if sub.OrderID != 0 {
				if _, ok := h.orderClients[sub.OrderID][sub.Conn]; ok {
					delete(h.orderClients[sub.OrderID], sub.Conn)
					sub.Conn.Close()
				}
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.restClients[ev.RestaurantID] {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.restClients[ev.RestaurantID], conn)
				}
			}
			for conn := range h.orderClients[ev.OrderID] {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.orderClients[ev.OrderID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast is called by the order lifecycle after every transition.
func (h *OrderHub) Broadcast(ev OrderEvent) {
	h.broadcast <- ev
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AccessChecker lets the hub validate subscriptions without importing the
// service layer.
type AccessChecker interface {
	CanSeeRestaurantFeed(userID, restaurantID uint) (bool, error)
	CanSeeOrderFeed(userID, orderID uint) (bool, error)
}

type Handler struct {
	hub    *OrderHub
	access AccessChecker
}

func NewHandler(hub *OrderHub, access AccessChecker) *Handler {
	return &Handler{hub: hub, access: access}
}

// WS route: /ws/restaurants/:id/orders (staff board)
func (h *Handler) HandleRestaurantFeed(c *gin.Context) {
	restID := parseUintParam(c, "id")
	userID := c.GetUint("userId")

	ok, err := h.access.CanSeeRestaurantFeed(userID, restID)
	if err != nil || !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, RestaurantID: restID}
	h.hub.register <- sub
	go h.drain(sub)
}

// WS route: /ws/orders/:id (customer tracking)
func (h *Handler) HandleOrderFeed(c *gin.Context) {
	orderID := parseUintParam(c, "id")
	userID := c.GetUint("userId")

	ok, err := h.access.CanSeeOrderFeed(userID, orderID)
	if err != nil || !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, OrderID: orderID}
	h.hub.register <- sub
	go h.drain(sub)
}

// drain keeps reading until the peer goes away, then unsubscribes once.
// The feeds are server-push only; inbound frames are discarded.
func (h *Handler) drain(sub Subscription) {
	defer func() { h.hub.unregister <- sub }()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func parseUintParam(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v)
}
