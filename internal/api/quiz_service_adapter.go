package api

import "github.com/koilabs/koimbti/internal/services"

type resultStoreAdapter struct {
	store Store
}

func newResultStoreAdapter(store Store) services.ResultStore {
	return &resultStoreAdapter{store: store}
}

func (a *resultStoreAdapter) InsertResult(r *services.QuizResult) error {
	return a.store.AddResult(convertServiceResult(r))
}

func (a *resultStoreAdapter) GetResult(uuid string) *services.QuizResult {
	return convertAPIResult(a.store.GetResult(uuid))
}

func (a *resultStoreAdapter) IncrementShare(uuid string) *services.QuizResult {
	return convertAPIResult(a.store.IncrementShareCount(uuid))
}

func (a *resultStoreAdapter) IncrementView(uuid string) *services.QuizResult {
	return convertAPIResult(a.store.IncrementViewCount(uuid))
}

func (a *resultStoreAdapter) CountResults() int {
	return a.store.CountResults()
}

func convertServiceResult(r *services.QuizResult) *QuizResult {
	if r == nil {
		return nil
	}
	return &QuizResult{
		UUID:       r.UUID,
		MBTIType:   r.MBTIType,
		TypeCode:   r.TypeCode,
		Scores:     r.Scores,
		Answers:    r.Answers,
		Locale:     r.Locale,
		ShareCount: r.ShareCount,
		ViewCount:  r.ViewCount,
		CreatedAt:  r.CreatedAt,
		IPAddress:  r.IPAddress,
		UserUUID:   r.UserUUID,
	}
}

func convertAPIResult(r *QuizResult) *services.QuizResult {
	if r == nil {
		return nil
	}
	return &services.QuizResult{
		UUID:       r.UUID,
		MBTIType:   r.MBTIType,
		TypeCode:   r.TypeCode,
		Scores:     r.Scores,
		Answers:    r.Answers,
		Locale:     r.Locale,
		ShareCount: r.ShareCount,
		ViewCount:  r.ViewCount,
		CreatedAt:  r.CreatedAt,
		IPAddress:  r.IPAddress,
		UserUUID:   r.UserUUID,
	}
}
