package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"Yatube/internal/config"
	"Yatube/internal/model"
	"Yatube/internal/pkg"
	"Yatube/internal/repository/database"
	"Yatube/internal/repository/redis"
	"Yatube/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

func words(lo, hi int) string {
	n := gofakeit.Number(lo, hi)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = gofakeit.Word()
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to the config file")
	users := flag.Int("users", 5, "authors to create")
	groups := flag.Int("groups", 3, "groups to create")
	posts := flag.Int("posts", 20, "posts per author")
	remove := flag.String("remove", "", "delete this author and their content instead of seeding")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	pkg.SetAccessSecret(cfg.Auth.AccessSecret)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	var (
		sessions *redis.SessionRepository
		revoker  service.SessionRevoker
		cache    service.IndexCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("connect redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		sessions = &redis.SessionRepository{RDB: rdb}
		revoker = sessions
		cache = redis.NewIndexCache(rdb, cfg.Redis.IndexTTL)
	}

	ctx := context.Background()
	if *remove != "" {
		if err := service.NewUserService(db, cache, revoker).RemoveAuthor(ctx, *remove); err != nil {
			log.Fatalf("remove author %s: %v", *remove, err)
		}
		log.Printf("removed author %s", *remove)
		return
	}

	userRepo := &database.UserRepository{DB: db}
	groupSvc := service.NewGroupService(db, nil)
	postSvc := service.NewPostService(db, cache, cfg.Posts.PerPage)
	commentSvc := service.NewCommentService(db)
	followSvc := service.NewFollowService(db, cfg.Posts.PerPage)

	var groupIDs []uint64
	for i := 0; i < *groups; i++ {
		title := gofakeit.Adjective() + " " + gofakeit.Noun()
		g, err := groupSvc.CreateGroup(ctx, service.GroupForm{
			Title:       title,
			Slug:        fmt.Sprintf("%s-%s", strings.ToLower(gofakeit.Noun()), gofakeit.Numerify("####")),
			Description: words(8, 20),
		})
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			log.Printf("skip group %q: %v", title, err)
			continue
		}
		if err != nil {
			log.Fatalf("create group: %v", err)
		}
		groupIDs = append(groupIDs, g.ID)
	}

	var authors []*model.User
	for i := 0; i < *users; i++ {
		u := &model.User{Username: fmt.Sprintf("%s_%s", strings.ToLower(gofakeit.FirstName()), gofakeit.Numerify("######"))}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatalf("create user: %v", err)
		}
		authors = append(authors, u)

		for j := 0; j < *posts; j++ {
			form := service.PostForm{Text: words(10, 60)}
			if len(groupIDs) > 0 && gofakeit.Bool() {
				id := groupIDs[gofakeit.Number(0, len(groupIDs)-1)]
				form.GroupID = &id
			}
			p, err := postSvc.CreatePost(ctx, u, form)
			if err != nil {
				log.Fatalf("create post: %v", err)
			}
			if i > 0 && gofakeit.Float32() > 0.5 {
				commenter := authors[gofakeit.Number(0, i-1)]
				if _, err := commentSvc.CreateComment(ctx, commenter, p.ID, service.CommentForm{Text: words(3, 15)}); err != nil {
					log.Fatalf("create comment: %v", err)
				}
			}
		}
	}

	for _, u := range authors {
		for _, other := range authors {
			if other.ID != u.ID && gofakeit.Bool() {
				if err := followSvc.Follow(ctx, u, other.Username); err != nil {
					log.Fatalf("follow: %v", err)
				}
			}
		}
	}

	for _, u := range authors {
		token, err := pkg.GenerateAccess(u.ID)
		if err != nil {
			log.Fatalf("issue token: %v", err)
		}
		if sessions != nil {
			if err := sessions.AddUserToken(ctx, u.ID, token); err != nil {
				log.Fatalf("store session: %v", err)
			}
		}
		fmt.Printf("%s\t%s\n", u.Username, token)
	}
}
