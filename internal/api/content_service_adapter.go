package api

import "github.com/koilabs/koimbti/internal/services"

type contentStoreAdapter struct {
	store Store
}

func newContentStoreAdapter(store Store) services.ContentStore {
	return &contentStoreAdapter{store: store}
}

func (a *contentStoreAdapter) ListQuestions(locale string) []*services.Question {
	qs := a.store.ListQuestions(locale)
	out := make([]*services.Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, convertAPIQuestion(q))
	}
	return out
}

func (a *contentStoreAdapter) GetType(mbtiType, locale string) *services.PersonalityType {
	return convertAPIType(a.store.GetPersonalityType(mbtiType, locale))
}

func (a *contentStoreAdapter) GetTypeByCode(typeCode, locale string) *services.PersonalityType {
	return convertAPIType(a.store.GetPersonalityTypeByCode(typeCode, locale))
}

func (a *contentStoreAdapter) ListTypes(locale string) []*services.PersonalityType {
	pts := a.store.ListPersonalityTypes(locale)
	out := make([]*services.PersonalityType, 0, len(pts))
	for _, pt := range pts {
		out = append(out, convertAPIType(pt))
	}
	return out
}

func convertAPIQuestion(q *Question) *services.Question {
	if q == nil {
		return nil
	}
	return &services.Question{
		ID:           q.ID,
		Number:       q.Number,
		Axis:         q.Axis,
		Locale:       q.Locale,
		Text:         q.Text,
		OptionALabel: q.OptionALabel,
		OptionBLabel: q.OptionBLabel,
		OptionAValue: q.OptionAValue,
		OptionBValue: q.OptionBValue,
		Weight:       q.Weight,
		Active:       q.Active,
	}
}

func convertServiceQuestion(q *services.Question) *Question {
	if q == nil {
		return nil
	}
	return &Question{
		ID:           q.ID,
		Number:       q.Number,
		Axis:         q.Axis,
		Locale:       q.Locale,
		Text:         q.Text,
		OptionALabel: q.OptionALabel,
		OptionBLabel: q.OptionBLabel,
		OptionAValue: q.OptionAValue,
		OptionBValue: q.OptionBValue,
		Weight:       q.Weight,
		Active:       q.Active,
	}
}

func convertAPIType(pt *PersonalityType) *services.PersonalityType {
	if pt == nil {
		return nil
	}
	return &services.PersonalityType{
		ID:                       pt.ID,
		MBTIType:                 pt.MBTIType,
		Locale:                   pt.Locale,
		Title:                    pt.Title,
		Subtitle:                 pt.Subtitle,
		TypeCode:                 pt.TypeCode,
		BasicPersonality:         pt.BasicPersonality,
		LoveCharacteristics:      pt.LoveCharacteristics,
		SuitablePartner:          pt.SuitablePartner,
		MatchingAdvice:           pt.MatchingAdvice,
		Strengths:                pt.Strengths,
		Weaknesses:               pt.Weaknesses,
		CompatibilityBest:        pt.CompatibilityBest,
		CompatibilityGood:        pt.CompatibilityGood,
		CompatibilityChallenging: pt.CompatibilityChallenging,
		FamousPeople:             pt.FamousPeople,
		Keywords:                 pt.Keywords,
		IconURL:                  pt.IconURL,
		CoverImageURL:            pt.CoverImageURL,
		Active:                   pt.Active,
	}
}

func convertServiceType(pt *services.PersonalityType) *PersonalityType {
	if pt == nil {
		return nil
	}
	return &PersonalityType{
		ID:                       pt.ID,
		MBTIType:                 pt.MBTIType,
		Locale:                   pt.Locale,
		Title:                    pt.Title,
		Subtitle:                 pt.Subtitle,
		TypeCode:                 pt.TypeCode,
		BasicPersonality:         pt.BasicPersonality,
		LoveCharacteristics:      pt.LoveCharacteristics,
		SuitablePartner:          pt.SuitablePartner,
		MatchingAdvice:           pt.MatchingAdvice,
		Strengths:                pt.Strengths,
		Weaknesses:               pt.Weaknesses,
		CompatibilityBest:        pt.CompatibilityBest,
		CompatibilityGood:        pt.CompatibilityGood,
		CompatibilityChallenging: pt.CompatibilityChallenging,
		FamousPeople:             pt.FamousPeople,
		Keywords:                 pt.Keywords,
		IconURL:                  pt.IconURL,
		CoverImageURL:            pt.CoverImageURL,
		Active:                   pt.Active,
	}
}
