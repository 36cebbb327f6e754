package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"bloom-wellness-backend/internal/advisor"
	"bloom-wellness-backend/internal/ai"
	"bloom-wellness-backend/internal/auth"
	"bloom-wellness-backend/internal/canvas"
	"bloom-wellness-backend/internal/config"
	"bloom-wellness-backend/internal/db"
	"bloom-wellness-backend/internal/emotion"
	"bloom-wellness-backend/internal/journal"
	"bloom-wellness-backend/internal/offers"
	"bloom-wellness-backend/internal/users"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to postgres")
	}
	defer database.Close()

	logrus.Info("connected to postgres")

	// ----- stores and clients -----
	userStore := users.NewStore(database)
	journalStore := journal.NewStore(database)
	offerStore := offers.NewStore(database)

	aiClient := ai.New(cfg.OpenAIKey, cfg.OpenAIModel)
	emotionClient := emotion.New(cfg.HuggingFaceToken)
	emotionClient.Model = cfg.EmotionModel
	canvasClient := canvas.New(cfg.CanvasBaseURL)

	advisorService := advisor.NewService(aiClient, nil)

	// ----- handlers -----
	authHandler := &auth.Handler{Store: userStore, Secret: []byte(cfg.JWTSecret), TokenTTL: cfg.TokenTTL}
	userHandler := users.NewHandler(userStore)
	journalHandler := journal.NewHandler(journalStore, emotionClient)
	offerHandler := offers.NewHandler(offerStore)
	canvasHandler := canvas.NewHandler(canvasClient, userStore)
	advisorHandler := advisor.NewHandler(advisorService, userStore)

	mw := auth.NewMiddleware([]byte(cfg.JWTSecret))

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- AUTH API -----
	mux.HandleFunc("/auth/register", authHandler.Register)
	mux.HandleFunc("/auth/login", authHandler.Login)

	// ----- USERS API -----
	mux.HandleFunc("/users/me", mw.Wrap(userHandler.Me))
	mux.HandleFunc("/users/me/facts", mw.Wrap(userHandler.Facts))
	mux.HandleFunc("/users/me/events", mw.Wrap(userHandler.Events))

	// ----- MENSTRUAL HEALTH API -----
	mux.HandleFunc("/menstrual-health/phase", mw.Wrap(advisorHandler.Phase))
	mux.HandleFunc("/menstrual-health/recommendations", mw.Wrap(advisorHandler.Recommendations))
	mux.HandleFunc("/events/suggestions", mw.Wrap(advisorHandler.Suggestions))
	mux.HandleFunc("/events/accept", mw.Wrap(advisorHandler.Accept))

	// ----- JOURNALS API -----
	mux.HandleFunc("/journals", mw.Wrap(journalHandler.Collection))
	mux.HandleFunc("/journals/{id}", mw.Wrap(journalHandler.Item))
	mux.HandleFunc("/journals/{id}/analyze", mw.Wrap(journalHandler.Analyze))
	mux.HandleFunc("/sentiment/analyze", mw.Wrap(journalHandler.AnalyzeText))

	// ----- OFFERS API -----
	mux.HandleFunc("/offers", mw.Wrap(offerHandler.Collection))
	mux.HandleFunc("/offers/{id}", mw.Wrap(offerHandler.Item))

	// ----- CANVAS API -----
	mux.HandleFunc("/canvas/assignments", mw.Wrap(canvasHandler.Assignments))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	logrus.Infof("API server is running on :%s", cfg.Port)
	logrus.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
