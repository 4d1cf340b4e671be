// Package mutation описывает записи, которые меняют данные бэкенда,
// и ключи кэша, устаревающие после каждой из них.
package mutation

import (
	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/querycache"
)

// Op — вид записи.
type Op string

const (
	OpCreatePost           Op = "create_post"
	OpCreateComment        Op = "create_comment"
	OpToggleHandshake      Op = "toggle_handshake"
	OpToggleJoin           Op = "toggle_join"
	OpUpdateUsername       Op = "update_username"
	OpUpdateProfilePicture Op = "update_profile_picture"
	OpCreateCommunity      Op = "create_community"
	OpAuthStateChanged     Op = "auth_state_changed"
)

// Target — сущности, которых касается запись. Заполняются только поля,
// нужные конкретной операции.
type Target struct {
	PostID        int64
	CommunityID   int64
	CommunityName string
	UserID        uuid.UUID
	Username      string
}

// Ключи кэша. Один источник имён для чтений (service) и инвалидаций.
const (
	KeyNewPosts       = "newPosts"
	KeyPosts          = "posts"
	KeyTrendingPosts  = "trendingPosts"
	KeyPost           = "post"
	KeyCommunityPosts = "communityPosts"
	KeyCommunity      = "community"
	KeyCommunities    = "communities"
	KeyJoinStatus     = "joinStatus"
	KeyComments       = "comments"
	KeyCommentsCount  = "commentsCount"
	KeyHandshakes     = "handshakes"
	KeyProfile        = "profile"
	KeyUserPosts      = "userPosts"
	KeyUserData       = "userData"
	KeyPosterData     = "posterData"
	KeyChats          = "chats"
)

var key = querycache.NewKey

// table — что устаревает после успешной записи.
var table = map[Op]func(t Target) []querycache.Key{
	OpCreatePost: func(t Target) []querycache.Key {
		return []querycache.Key{
			key(KeyNewPosts),
			key(KeyPosts),
			key(KeyTrendingPosts),
			key(KeyCommunityPosts, t.CommunityID),
			key(KeyJoinStatus, t.CommunityName),
			key(KeyUserPosts, t.UserID),
		}
	},
	OpCreateComment: func(t Target) []querycache.Key {
		return []querycache.Key{
			key(KeyComments, t.PostID),
			key(KeyCommentsCount, t.PostID),
		}
	},
	OpToggleHandshake: func(t Target) []querycache.Key {
		return []querycache.Key{
			key(KeyHandshakes, t.PostID),
		}
	},
	OpToggleJoin: func(t Target) []querycache.Key {
		return []querycache.Key{
			key(KeyJoinStatus, t.CommunityName),
		}
	},
	OpUpdateUsername: func(t Target) []querycache.Key {
		return []querycache.Key{
			key(KeyProfile),
			key(KeyUserData, t.UserID),
			key(KeyUserPosts),
			key(KeyPosterData, t.UserID),
		}
	},
	OpUpdateProfilePicture: func(t Target) []querycache.Key {
		return []querycache.Key{
			key(KeyProfile),
			key(KeyPosts),
			key(KeyPosterData, t.UserID),
			key(KeyUserData, t.UserID),
		}
	},
	OpCreateCommunity: func(Target) []querycache.Key {
		return []querycache.Key{
			key(KeyCommunities),
		}
	},
	OpAuthStateChanged: func(t Target) []querycache.Key {
		return []querycache.Key{
			key(KeyUserData, t.UserID),
		}
	},
}

// Invalidations возвращает шаблоны ключей, устаревающих после op.
// Для неизвестной операции — nil.
func Invalidations(op Op, t Target) []querycache.Key {
	fn, ok := table[op]
	if !ok {
		return nil
	}

	return fn(t)
}

// Ops — все известные операции (для тестов и диагностики).
func Ops() []Op {
	return []Op{
		OpCreatePost,
		OpCreateComment,
		OpToggleHandshake,
		OpToggleJoin,
		OpUpdateUsername,
		OpUpdateProfilePicture,
		OpCreateCommunity,
		OpAuthStateChanged,
	}
}
