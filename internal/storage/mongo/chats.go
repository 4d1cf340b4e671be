package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pribylovaa/wave-feed/internal/models"
)

// chatDoc — документ коллекции chats.
type chatDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Picture   string    `bson:"picture"`
	Members   []string  `bson:"members"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d chatDoc) toModel() models.Chat {
	return models.Chat{ID: d.ID, Name: d.Name, Picture: d.Picture}
}

// ChatsByUser возвращает чаты, в которых состоит пользователь (последняя активность сверху).
func (m *Mongo) ChatsByUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	const op = "storage/mongo/chats/ChatsByUser"

	cur, err := m.chats.Find(ctx,
		bson.M{"members": userID.String()},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]models.Chat, 0)
	for cur.Next(ctx) {
		var d chatDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, d.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
