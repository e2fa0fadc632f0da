package kafka

import (
	"Lumina/internal/pkg/es"
	"Lumina/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"

	"github.com/IBM/sarama"
)

const booksTable = "books"

// BooksHandler 消费 books 表的 binlog，同步到 ES 书目索引
type BooksHandler struct {
	bookESRepo es.BookRepo
}

func NewBooksHandler(bookESRepo es.BookRepo) *BooksHandler {
	return &BooksHandler{bookESRepo: bookESRepo}
}

func (s *BooksHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("books consumer setup")
	return nil
}

func (s *BooksHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("books consumer cleanup")
	return nil
}

func (s *BooksHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-books consume claim")
	if err := pullMessageBatch(session, claim, s.logic); err != nil {
		log.Error("topic-books process batch error", "err", err)
		return err
	}
	log.Info("topic-books consume claim end")
	return nil
}

func (s *BooksHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, booksTable)
	if err != nil {
		// 非 books 表或空数据不重试
		log.Debug("skip canal message", "err", err)
		return nil
	}
	return s.apply(logger.WithTraceID(ctx), canalMsg)
}

// apply 按行处理，DELETE 删除文档，其余按 ts 外部版本覆写
func (s *BooksHandler) apply(ctx context.Context, canalMsg *CanalMessage) error {
	for _, row := range canalMsg.Data {
		if canalMsg.Type == DELETE {
			externalID := StrToString(row["external_id"])
			if externalID == "" {
				continue
			}
			if err := s.bookESRepo.DeleteBook(ctx, externalID); err != nil {
				return err
			}
			continue
		}

		book, err := toBookES(row)
		if err != nil {
			log.WarnContext(ctx, "invalid books row, skipped", "err", err)
			continue
		}
		if err = s.bookESRepo.IndexBook(ctx, book, canalMsg.TS); err != nil {
			return err
		}
	}
	return nil
}

func toBookES(row map[string]interface{}) (*es.BookES, error) {
	externalID := StrToString(row["external_id"])
	if externalID == "" {
		return nil, fmt.Errorf("books row %v has no external_id", row["id"])
	}

	genres, err := StrToStringList(row["genres"])
	if err != nil {
		return nil, fmt.Errorf("genres: %w", err)
	}
	vibeTags, err := StrToStringList(row["vibe_tags"])
	if err != nil {
		return nil, fmt.Errorf("vibe_tags: %w", err)
	}
	mood, err := StrToStringList(row["mood"])
	if err != nil {
		return nil, fmt.Errorf("mood: %w", err)
	}
	atmosphere, err := StrToStringList(row["atmosphere"])
	if err != nil {
		return nil, fmt.Errorf("atmosphere: %w", err)
	}

	return &es.BookES{
		ID:            StrToUint64(row["id"]),
		ExternalID:    externalID,
		Title:         StrToString(row["title"]),
		Author:        StrToString(row["author"]),
		Cover:         StrToString(row["cover"]),
		Description:   StrToString(row["description"]),
		ISBN:          StrToStringPtr(row["isbn"]),
		Pages:         StrToIntPtr(row["pages"]),
		PublishedYear: StrToIntPtr(row["published_year"]),
		Genres:        genres,
		VibeTags:      vibeTags,
		Mood:          mood,
		Atmosphere:    atmosphere,
		Pace:          StrToString(row["pace"]),
		Intensity:     StrToInt(row["intensity"]),
		CreatedAt:     StrToDateTime(row["created_at"]),
	}, nil
}
