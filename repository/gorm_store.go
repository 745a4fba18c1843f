package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quizmaker/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormStore struct {
	db          *gorm.DB
	maxPageSize int
}

func NewGormStore(db *gorm.DB, maxPageSize int) *GormStore {
	return &GormStore{db: db, maxPageSize: maxPageSize}
}

// Migrate creates or updates the quiz tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Question{},
		&models.Quiz{},
		&models.QuizQuestion{},
	)
}

func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}

func (s *GormStore) SearchQuestionsPaged(ctx context.Context, search string, page, pageSize int) (models.Page[models.Question], error) {
	page, pageSize = clampPage(page, pageSize, s.maxPageSize)
	query := s.db.WithContext(ctx).Model(&models.Question{})
	if strings.TrimSpace(search) != "" {
		query = query.Where(`LOWER(text) LIKE ? ESCAPE '\'`, likePattern(search))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return models.Page[models.Question]{}, fmt.Errorf("count questions: %w", err)
	}

	var items []models.Question
	err := query.Session(&gorm.Session{}).Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return models.Page[models.Question]{}, fmt.Errorf("search questions: %w", err)
	}
	return models.Page[models.Question]{Items: items, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

func (s *GormStore) GetQuestionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}
	var items []models.Question
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return items, nil
}

func (s *GormStore) GetQuizzesPaged(ctx context.Context, search string, page, pageSize int, order models.SortOrder) (models.Page[models.Quiz], error) {
	page, pageSize = clampPage(page, pageSize, s.maxPageSize)
	query := s.db.WithContext(ctx).Model(&models.Quiz{}).Where("is_deleted = ?", false)
	if strings.TrimSpace(search) != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(search))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return models.Page[models.Quiz]{}, fmt.Errorf("count quizzes: %w", err)
	}

	dir := "DESC"
	if order == models.SortAsc {
		dir = "ASC"
	}

	var items []models.Quiz
	err := query.Session(&gorm.Session{}).Preload("Links").
		Order("created_at " + dir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return models.Page[models.Quiz]{}, fmt.Errorf("list quizzes: %w", err)
	}
	return models.Page[models.Quiz]{Items: items, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

func (s *GormStore) GetQuizWithQuestions(ctx context.Context, id uuid.UUID) (*models.QuizAggregate, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Preload("Links", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order")
		}).
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if quiz.Links == nil {
		quiz.Links = []models.QuizQuestion{}
	}

	ids := make([]uuid.UUID, 0, len(quiz.Links))
	for _, l := range quiz.Links {
		ids = append(ids, l.QuestionID)
	}
	// Linked questions stay readable even if they were soft-deleted later.
	var questions []models.Question
	if len(ids) > 0 {
		if err := s.db.WithContext(ctx).Unscoped().Where("id IN ?", ids).Find(&questions).Error; err != nil {
			return nil, fmt.Errorf("load quiz questions: %w", err)
		}
	}

	arena := make(map[uuid.UUID]models.Question, len(questions))
	for _, q := range questions {
		arena[q.ID] = q
	}
	return &models.QuizAggregate{Quiz: quiz, Questions: arena}, nil
}

func (s *GormStore) NewUnitOfWork() UnitOfWork {
	return &gormUnitOfWork{db: s.db}
}

type gormUnitOfWork struct {
	changeSet
	db *gorm.DB
}

// SaveAll writes every staged change inside one transaction.
func (u *gormUnitOfWork) SaveAll(ctx context.Context) error {
	if u.empty() {
		return nil
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(u.questions) > 0 {
			if err := tx.Create(&u.questions).Error; err != nil {
				return fmt.Errorf("insert questions: %w", err)
			}
		}

		for i := range u.newQuizzes {
			quiz := u.newQuizzes[i]
			links := quiz.Links
			if err := tx.Omit("Links").Create(&quiz).Error; err != nil {
				return fmt.Errorf("insert quiz: %w", err)
			}
			if len(links) > 0 {
				if err := tx.Create(&links).Error; err != nil {
					return fmt.Errorf("insert quiz links: %w", err)
				}
			}
		}

		for i := range u.updates {
			quiz := u.updates[i]
			res := tx.Model(&models.Quiz{}).
				Where("id = ? AND is_deleted = ?", quiz.ID, false).
				Updates(map[string]interface{}{
					"name":       quiz.Name,
					"updated_at": quiz.UpdatedAt,
				})
			if res.Error != nil {
				return fmt.Errorf("update quiz: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.QuizQuestion{}).Error; err != nil {
				return fmt.Errorf("clear quiz links: %w", err)
			}
			if len(quiz.Links) > 0 {
				links := quiz.Links
				if err := tx.Create(&links).Error; err != nil {
					return fmt.Errorf("insert quiz links: %w", err)
				}
			}
		}

		for _, d := range u.softDeletes {
			res := tx.Model(&models.Quiz{}).
				Where("id = ? AND is_deleted = ?", d.id, false).
				Updates(map[string]interface{}{
					"is_deleted": true,
					"deleted_at": d.at,
				})
			if res.Error != nil {
				return fmt.Errorf("soft delete quiz: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	u.reset()
	return nil
}
