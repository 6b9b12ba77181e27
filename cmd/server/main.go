package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	"github.com/VitaminP8/yatube/internal/cache"
	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/feed"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/service"
	"github.com/VitaminP8/yatube/internal/storage/memory"
	"github.com/VitaminP8/yatube/internal/storage/postgres"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/internal/web"
)

type stores struct {
	users    user.UserStorage
	groups   group.GroupStorage
	posts    post.PostStorage
	comments comment.CommentStorage
	follows  follow.FollowStorage
}

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	if args := flag.Args(); len(args) > 0 {
		switch args[0] {
		case "migrate":
			runMigrations()
		case "create-group":
			runCreateGroup(args[1:])
		default:
			log.Fatalf("unknown command: %s", args[0])
		}
		return
	}

	serve(*storageType)
}

func runMigrations() {
	db := openDB()
	defer postgres.CloseDB(db)

	log.Info("Starting database migrations...")
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}
	log.Info("Migrations completed successfully")
}

// runCreateGroup - группы заводит администратор, пользовательского интерфейса для этого нет
func runCreateGroup(args []string) {
	fs := flag.NewFlagSet("create-group", flag.ExitOnError)
	title := fs.String("title", "", "Название группы")
	slug := fs.String("slug", "", "Адрес группы: /group/<slug>/")
	description := fs.String("description", "", "Описание группы")
	_ = fs.Parse(args)

	if *title == "" || *slug == "" {
		log.Fatal("create-group: -title and -slug are required")
	}

	db := openDB()
	defer postgres.CloseDB(db)

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	g, err := postgres.NewGroupPostgresStorage(db).CreateGroup(*title, *slug, *description)
	if err != nil {
		log.Fatalf("could not create group: %v", err)
	}
	log.WithFields(log.Fields{"id": g.ID, "slug": g.Slug}).Info("group created")
}

func openDB() *gorm.DB {
	db, err := postgres.InitDB(postgres.DSNFromEnv())
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	return db
}

func serve(storageType string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := config.SetupLogger(cfg); err != nil {
		log.Fatalf("invalid logger configuration: %v", err)
	}

	var st stores
	var db *gorm.DB

	switch storageType {
	case "postgres":
		db = openDB()
		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Info("Используется PostgreSQL хранилище")
		st = stores{
			users:    postgres.NewUserPostgresStorage(db),
			groups:   postgres.NewGroupPostgresStorage(db),
			posts:    postgres.NewPostPostgresStorage(db),
			comments: postgres.NewCommentPostgresStorage(db),
			follows:  postgres.NewFollowPostgresStorage(db),
		}

	case "memory":
		log.Info("Используется in-memory хранилище")
		users := memory.NewUserMemoryStorage()
		groups := memory.NewGroupMemoryStorage()
		posts := memory.NewPostMemoryStorage(users, groups)
		st = stores{
			users:    users,
			groups:   groups,
			posts:    posts,
			comments: memory.NewCommentMemoryStorage(posts, users),
			follows:  memory.NewFollowMemoryStorage(),
		}
		if err := seedGroups(groups, os.Getenv("SEED_GROUPS")); err != nil {
			log.Fatalf("could not seed groups: %v", err)
		}

	default:
		log.Fatalf("неизвестный тип хранилища: %s", storageType)
	}

	mediaStore := media.NewStore(cfg.MediaRoot)

	srv, err := web.New(web.Options{
		Feed: &feed.Assembler{
			Posts:    st.posts,
			Groups:   st.groups,
			Users:    st.users,
			Comments: st.comments,
			Follows:  st.follows,
			PageSize: cfg.PageSize,
			Cache:    cache.NewPageCache(cfg.CacheSize, cfg.CacheTTL),
		},
		Service: &service.Service{
			Posts:      st.posts,
			Groups:     st.groups,
			Users:      st.users,
			Comments:   st.comments,
			Follows:    st.follows,
			Media:      mediaStore,
			JWTSecret:  cfg.JWTSecret,
			SessionTTL: cfg.SessionTTL,
		},
		Media:      mediaStore,
		Logger:     log.StandardLogger(),
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		log.Fatalf("could not create server: %v", err)
	}

	// HTTP сервер
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// запуск HTTP сервер
	go func() {
		log.Infof("Сервер запущен на %s", cfg.Addr)
		// ListenAndServe блокирует, пока не вызван Shutdown
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Завершение...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Ошибка при завершении сервера: %v", err)
	}

	if db != nil {
		if err := postgres.CloseDB(db); err != nil {
			log.Error(err)
		}
	}

	log.Info("Сервер остановлен корректно")
}
