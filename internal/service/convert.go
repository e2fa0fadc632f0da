package service

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/model"
	"Lumina/internal/pkg/matcher"

	"github.com/jinzhu/copier"
)

func toBookDTO(b *model.Book) *dto.BookDTO {
	out := &dto.BookDTO{}
	_ = copier.Copy(out, b)
	if b.CreatedAt.IsZero() {
		out.CreatedAt = nil
	}
	return out
}

func toBookDTOs(list []*model.Book) []*dto.BookDTO {
	out := make([]*dto.BookDTO, 0, len(list))
	for _, b := range list {
		out = append(out, toBookDTO(b))
	}
	return out
}

func withMatch(d *dto.BookDTO, ms matcher.MatchScore) *dto.BookDTO {
	d.Match = &dto.MatchScoreDTO{Score: ms.Score, Reasons: ms.Reasons}
	return d
}

func toProfileDTO(p *model.ReadingProfile) *dto.ProfileResponseDTO {
	out := &dto.ProfileResponseDTO{}
	_ = copier.Copy(out, p)
	return out
}

func toSwipeDTO(s *model.Swipe) *dto.SwipeItemDTO {
	out := &dto.SwipeItemDTO{
		ID:        s.ID,
		Action:    s.Action,
		Context:   s.Context,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Book.ID != 0 || s.Book.ExternalID != "" {
		out.Book = *toBookDTO(&s.Book)
	}
	return out
}

// bookFromInput 调用方提交的书目，缺省字段按解析边界的规则补齐
func bookFromInput(in *dto.BookInputDTO) *model.Book {
	pace := in.Pace
	if !model.SetPace[pace] {
		pace = model.PaceMedium
	}
	intensity := in.Intensity
	if intensity < 1 || intensity > 5 {
		intensity = 3
	}
	return &model.Book{
		ExternalID: in.ExternalID,
		Title:      in.Title,
		Author:     in.Author,
		Cover:      in.Cover,
		Genres:     model.FilterBlankDistinct(in.Genres),
		VibeTags:   model.FilterVocabulary(in.VibeTags, model.SetVibeTag),
		Mood:       model.FilterVocabulary(in.Mood, model.SetMoodTag),
		Atmosphere: model.FilterVocabulary(in.Atmosphere, model.SetAtmosphereTag),
		Pace:       pace,
		Intensity:  intensity,
	}
}

func toMatchContext(d *dto.RecommendContextDTO) *matcher.RecommendationContext {
	if d == nil {
		return nil
	}
	return &matcher.RecommendationContext{
		Mood:          d.Mood,
		Atmosphere:    d.Atmosphere,
		Purpose:       d.Purpose,
		TimeAvailable: d.TimeAvailable,
	}
}
