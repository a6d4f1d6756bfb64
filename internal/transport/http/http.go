package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/cart"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/history"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/order"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/product"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/session"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/ordersvc"
	addcartitem "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/add_cart_item"
	cancelorder "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/cancel_order"
	checkoutcart "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/checkout_cart"
	clearcart "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/clear_cart"
	createorder "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/create_order"
	createproduct "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/create_product"
	deleteorder "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/delete_order"
	deleteproduct "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/delete_product"
	getcart "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/get_cart"
	getorder "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/get_order"
	getproduct "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/get_product"
	getprofile "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/get_profile"
	listorders "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/list_orders"
	listordersbystatus "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/list_orders_by_status"
	listproducts "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/list_products"
	loginuser "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/login_user"
	logoutuser "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/logout_user"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/middleware/auth"
	orderhistory "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/order_history"
	registeruser "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/register_user"
	removecartitem "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/remove_cart_item"
	searchproducts "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/search_products"
	updatecartitem "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/update_cart_item"
	updateorder "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/update_order"
	updateproduct "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/update_product"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/pkg/http/middleware/trace"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/pkg/logger"
)

type orderService interface {
	Create(ctx context.Context, cmd ordersvc.CreateOrderCommand) (order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	ListByClient(ctx context.Context, clientID int64, st *status.Status) ([]order.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, st *status.Status) ([]order.Order, error)
	ListByStatus(ctx context.Context, st status.Status) ([]order.Order, error)
	Update(ctx context.Context, cmd ordersvc.UpdateOrderCommand) (order.Order, error)
	Cancel(ctx context.Context, cmd ordersvc.CancelOrderCommand) (order.Order, error)
	Delete(ctx context.Context, id, actorRestaurantID int64) error
	History(ctx context.Context, orderID int64) ([]history.StatusChange, error)
}

type cartService interface {
	Get(ctx context.Context, clientID int64) (cart.Cart, error)
	AddProduct(ctx context.Context, clientID, productID int64, quantity int) (cart.Cart, error)
	UpdateQuantity(ctx context.Context, clientID, productID int64, quantity int) (cart.Cart, error)
	RemoveProduct(ctx context.Context, clientID, productID int64) (cart.Cart, error)
	Clear(ctx context.Context, clientID int64) error
	Checkout(ctx context.Context, clientID int64, observations string) (order.Order, error)
}

type catalogService interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	List(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	Search(ctx context.Context, name string) ([]product.Product, error)
	Create(ctx context.Context, p product.Product, actorRestaurantID int64) (product.Product, error)
	Update(ctx context.Context, p product.Product, actorRestaurantID int64) (product.Product, error)
	Delete(ctx context.Context, id, actorRestaurantID int64) error
}

type authService interface {
	Register(ctx context.Context, newUser user.User, password string) (user.User, error)
	Login(ctx context.Context, email, password string) (session.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (session.Session, error)
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	orders  orderService
	carts   cartService
	catalog catalogService
	auth    authService
}

func NewHTTPTransport(
	orders orderService,
	carts cartService,
	catalog catalogService,
	authSvc authService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:  server,
		router:  router,
		orders:  orders,
		carts:   carts,
		catalog: catalog,
		auth:    authSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	authenticated := auth.NewAuthMiddleware(h.auth)
	clientsOnly := auth.RequireRole(user.RoleClient)
	restaurantsOnly := auth.RequireRole(user.RoleRestaurant)

	h.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.With(authenticated).Get("/me", h.getProfile)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Get("/search", h.searchProducts)
			r.Get("/{id}", h.getProduct)

			r.Group(func(r chi.Router) {
				r.Use(authenticated, restaurantsOnly)
				r.Post("/", h.createProduct)
				r.Patch("/{id}", h.updateProduct)
				r.Delete("/{id}", h.deleteProduct)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(authenticated, clientsOnly)
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addCartItem)
			r.Patch("/items/{productId}", h.updateCartItem)
			r.Delete("/items/{productId}", h.removeCartItem)
			r.Post("/checkout", h.checkout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/", h.listOrders)
			r.Get("/{id}", h.getOrder)
			r.Get("/{id}/history", h.orderHistory)
			r.Post("/{id}/cancel", h.cancelOrder)

			r.With(clientsOnly).Post("/", h.createOrder)

			r.Group(func(r chi.Router) {
				r.Use(restaurantsOnly)
				r.Get("/status/{status}", h.listOrdersByStatus)
				r.Put("/{id}", h.updateOrder)
				r.Delete("/{id}", h.deleteOrder)
			})
		})
	})
}

func (h *HTTPTransport) register(w http.ResponseWriter, r *http.Request) {
	registeruser.Register(w, r, h.auth)
}

func (h *HTTPTransport) login(w http.ResponseWriter, r *http.Request) {
	loginuser.Login(w, r, h.auth)
}

func (h *HTTPTransport) logout(w http.ResponseWriter, r *http.Request) {
	logoutuser.Logout(w, r, h.auth)
}

func (h *HTTPTransport) getProfile(w http.ResponseWriter, r *http.Request) {
	getprofile.GetProfile(w, r, h.auth)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.catalog)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	getproduct.GetProduct(w, r, h.catalog)
}

func (h *HTTPTransport) searchProducts(w http.ResponseWriter, r *http.Request) {
	searchproducts.SearchProducts(w, r, h.catalog)
}

func (h *HTTPTransport) createProduct(w http.ResponseWriter, r *http.Request) {
	createproduct.CreateProduct(w, r, h.catalog)
}

func (h *HTTPTransport) updateProduct(w http.ResponseWriter, r *http.Request) {
	updateproduct.UpdateProduct(w, r, h.catalog)
}

func (h *HTTPTransport) deleteProduct(w http.ResponseWriter, r *http.Request) {
	deleteproduct.DeleteProduct(w, r, h.catalog)
}

func (h *HTTPTransport) getCart(w http.ResponseWriter, r *http.Request) {
	getcart.GetCart(w, r, h.carts)
}

func (h *HTTPTransport) addCartItem(w http.ResponseWriter, r *http.Request) {
	addcartitem.AddCartItem(w, r, h.carts)
}

func (h *HTTPTransport) updateCartItem(w http.ResponseWriter, r *http.Request) {
	updatecartitem.UpdateCartItem(w, r, h.carts)
}

func (h *HTTPTransport) removeCartItem(w http.ResponseWriter, r *http.Request) {
	removecartitem.RemoveCartItem(w, r, h.carts)
}

func (h *HTTPTransport) clearCart(w http.ResponseWriter, r *http.Request) {
	clearcart.ClearCart(w, r, h.carts)
}

func (h *HTTPTransport) checkout(w http.ResponseWriter, r *http.Request) {
	checkoutcart.Checkout(w, r, h.carts)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orders)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) listOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	listordersbystatus.ListOrdersByStatus(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.orders)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.orders)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.orders)
}

func (h *HTTPTransport) orderHistory(w http.ResponseWriter, r *http.Request) {
	orderhistory.OrderHistory(w, r, h.orders)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
