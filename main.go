package main

import (
	"context"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"google.golang.org/api/option"

	"github.com/Stieges/hallenfussball-pwa-sub008/pkg/clock"

	livematch "github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
	resend "github.com/Stieges/hallenfussball-pwa-sub008/repos/resend"
	tournament "github.com/Stieges/hallenfussball-pwa-sub008/repos/tournament"

	display "github.com/Stieges/hallenfussball-pwa-sub008/services/display"
	scoreboard "github.com/Stieges/hallenfussball-pwa-sub008/services/scoreboard"
	sync "github.com/Stieges/hallenfussball-pwa-sub008/services/sync"
)

// liveMatchStore is the union of what the services need from the live
// backend, satisfied by both the Firestore and the SQLite store.
type liveMatchStore interface {
	Get(ctx context.Context, tournamentID, matchID string) (*livematch.LiveMatch, error)
	Save(ctx context.Context, tournamentID string, match *livematch.LiveMatch) error
	List(ctx context.Context, tournamentID string) ([]*livematch.LiveMatch, error)
}

type tournamentStore interface {
	Get(ctx context.Context, slug string) (*tournament.Tournament, error)
	GetMatch(ctx context.Context, slug, matchID string) (*tournament.Match, error)
	UpdateMatch(ctx context.Context, slug, matchID string, update *tournament.Match) error
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	credentialsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	sqlitePath := os.Getenv("SQLITE_PATH")
	hostURL := os.Getenv("HOST_URL")
	port := os.Getenv("PORT")
	allowOrigins := os.Getenv("CORS_HOSTS")
	if port == "" {
		port = "8080"
	}

	var liveStore liveMatchStore
	var tournaments tournamentStore
	var notifier scoreboard.Notifier

	if projectID != "" {
		credentialsOption := option.WithCredentialsJSON([]byte(credentialsJSON))

		firestoreClient, err := firestore.NewClient(ctx, projectID, credentialsOption)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		liveStore = livematch.NewFirestoreStore(firestoreClient)
		tournaments = tournament.NewFirestoreStore(firestoreClient)
		if os.Getenv("RESEND_KEY") != "" {
			notifier = resend.NewService(firestoreClient, hostURL)
		}
	} else {
		if sqlitePath == "" {
			sqlitePath = "hallenfussball.db"
		}
		db, err := sqlx.Connect("sqlite3", sqlitePath+"?_journal_mode=WAL")
		if err != nil {
			log.Fatalf("Failed to open local database: %v", err)
		}
		defer db.Close()

		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			log.Fatalf("Failed to configure local database: %v", err)
		}

		liveStore, err = livematch.NewSQLiteStore(db)
		if err != nil {
			log.Fatalf("Failed to prepare live match tables: %v", err)
		}
		tournaments, err = tournament.NewSQLiteStore(db)
		if err != nil {
			log.Fatalf("Failed to prepare tournament tables: %v", err)
		}
		log.Printf("Running against local database %s\n", sqlitePath)
	}

	hub := display.NewHub()
	go hub.Run()

	clk := clock.System()

	scoreboardService := scoreboard.NewService(liveStore, tournaments, clk, hub, notifier)
	displayService := display.NewDisplayService(liveStore, hub)
	syncService := sync.NewSyncService(liveStore, tournaments, clk)

	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(allowOrigins, ",")
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}

	router := gin.Default()
	if allowOrigins != "" {
		router.Use(cors.New(config))
	}

	scoreboardRouter := router.Group("/scoreboard/v1")
	displayRouter := router.Group("/display/v1")
	syncRouter := router.Group("/sync/v1")

	scoreboard.NewHTTPHandler(scoreboard.HTTPOptions{
		Service: scoreboardService,
		Router:  scoreboardRouter,
	})

	display.NewHTTPHandler(display.HTTPOptions{
		Service: displayService,
		Router:  displayRouter,
	})

	sync.NewHTTPHandler(sync.HTTPOptions{
		Service: syncService,
		Router:  syncRouter,
	})

	log.Fatal(router.Run(":" + port))
}
