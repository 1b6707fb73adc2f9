package routes

import (
	"net/http"

	"yatube/app/auth"
	"yatube/app/cache"
	"yatube/app/controllers"
	"yatube/app/logging"
	"yatube/app/media"
	"yatube/app/middleware"
	"yatube/app/repositories"
	"yatube/app/services"
	"yatube/app/views"

	"github.com/gorilla/mux"
)

// LoginURL is where anonymous users are sent for protected pages.
const LoginURL = "/auth/login/"

// Deps are the collaborators the router is built from.
type Deps struct {
	Store    *repositories.Store
	Media    media.Store
	Cache    cache.Cache
	Sessions *auth.SessionManager
	Renderer *views.Renderer
	Log      logging.Logger
	PageSize int
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(d Deps) *mux.Router {
	postService := services.NewPostService(d.Store, d.Media, d.PageSize)
	commentService := services.NewCommentService(d.Store)
	followService := services.NewFollowService(d.Store)
	groupService := services.NewGroupService(d.Store)
	userService := services.NewUserService(d.Store)

	postController := controllers.NewPostController(d.Renderer, d.Log, postService, groupService, followService)
	commentController := controllers.NewCommentController(d.Renderer, d.Log, commentService)
	followController := controllers.NewFollowController(d.Renderer, d.Log, followService)
	authController := controllers.NewAuthController(d.Renderer, d.Log, userService, d.Sessions)
	aboutController := controllers.NewAboutController(d.Renderer, d.Log)
	mediaController := controllers.NewMediaController(d.Renderer, d.Log, d.Media)
	apiController := controllers.NewAPIController(d.Renderer, d.Log, postService)

	authenticate := middleware.Authenticate(d.Sessions)
	login := middleware.RequireLogin(LoginURL)
	protected := func(h http.HandlerFunc) http.Handler { return login(h) }

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(d.Log))
	router.Use(middleware.Recoverer(d.Log, http.HandlerFunc(aboutController.ServerError)))
	router.Use(authenticate)

	// Unmatched paths bypass router.Use, so they get the chain explicitly
	router.NotFoundHandler = middleware.RequestID(middleware.Logger(d.Log)(authenticate(http.HandlerFunc(aboutController.NotFound))))

	// Listings; only the index page is cached
	index := http.Handler(http.HandlerFunc(postController.Index))
	if d.Cache != nil {
		index = middleware.CachePage(d.Cache, "index")(index)
	}
	router.Handle("/", index).Methods("GET", "HEAD")
	router.HandleFunc("/group/{slug}/", postController.GroupPosts).Methods("GET")
	router.HandleFunc("/profile/{username}/", postController.Profile).Methods("GET")
	router.Handle("/follow/", protected(postController.FollowIndex)).Methods("GET")

	// Posts
	router.HandleFunc("/posts/{id:[0-9]+}/", postController.Detail).Methods("GET")
	router.Handle("/create/", protected(postController.New)).Methods("GET")
	router.Handle("/create/", protected(postController.Create)).Methods("POST")
	router.Handle("/posts/{id:[0-9]+}/edit/", protected(postController.EditForm)).Methods("GET")
	router.Handle("/posts/{id:[0-9]+}/edit/", protected(postController.Edit)).Methods("POST")
	router.Handle("/posts/{id:[0-9]+}/delete/", protected(postController.Delete)).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}/comment/", commentController.Create).Methods("POST")

	// Follows
	router.Handle("/profile/{username}/follow/", protected(followController.Follow)).Methods("POST")
	router.Handle("/profile/{username}/unfollow/", protected(followController.Unfollow)).Methods("POST")

	// Accounts
	router.HandleFunc("/auth/signup/", authController.SignupForm).Methods("GET")
	router.HandleFunc("/auth/signup/", authController.Signup).Methods("POST")
	router.HandleFunc(LoginURL, authController.LoginForm).Methods("GET")
	router.HandleFunc(LoginURL, authController.Login).Methods("POST")
	router.HandleFunc("/auth/logout/", authController.Logout).Methods("POST")

	// Static pages and media
	router.HandleFunc("/about/author/", aboutController.Author).Methods("GET")
	router.HandleFunc("/about/tech/", aboutController.Tech).Methods("GET")
	router.HandleFunc("/media/{key:.+}", mediaController.Serve).Methods("GET")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.HandleFunc("/posts", apiController.Index).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", apiController.Show).Methods("GET")
	api.HandleFunc("/groups/{slug}/posts", apiController.GroupPosts).Methods("GET")
	api.HandleFunc("/profile/{username}/posts", apiController.ProfilePosts).Methods("GET")

	return router
}
