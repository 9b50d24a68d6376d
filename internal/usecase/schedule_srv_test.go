package usecase

import (
	"context"
	"testing"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTemplateRepo struct {
	repository.TemplateClassRepository
	templates []*entity.TemplateClass
}

func (f *fakeTemplateRepo) FindAllActive(_ context.Context) ([]*entity.TemplateClass, error) {
	var out []*entity.TemplateClass
	for _, template := range f.templates {
		if template.IsActive {
			out = append(out, template)
		}
	}
	return out, nil
}

func template(name string, weekday int, startTime string, active bool) *entity.TemplateClass {
	return &entity.TemplateClass{
		BaseSimple:      entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:            name,
		Weekday:         weekday,
		StartTime:       startTime,
		MaxParticipants: 10,
		IsActive:        active,
	}
}

func TestScheduleGenerate(t *testing.T) {
	classRepo := &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{}}
	repo := &repository.Repository{
		Class: classRepo,
		TemplateClass: &fakeTemplateRepo{templates: []*entity.TemplateClass{
			template("Pilates Mat", 0, "09:00", true),  // Monday
			template("Yoga Flow", 2, "18:00", true),    // Wednesday
			template("Cadillac Flow", 4, "10:00", false), // inactive
		}},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	// 2026-09-07 is a Monday; two full weeks.
	created, err := svc.Generate(context.Background(), &request.GenerateScheduleRequest{
		From: "2026-09-07",
		To:   "2026-09-20",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, created, "two active templates over two weeks")

	require.Len(t, classRepo.created, 1)
	for _, class := range classRepo.created[0] {
		weekday := (int(class.Date.Weekday()) + 6) % 7
		switch class.Name {
		case "Pilates Mat":
			assert.Equal(t, 0, weekday)
			assert.Equal(t, "09:00", class.StartTime)
		case "Yoga Flow":
			assert.Equal(t, 2, weekday)
			assert.Equal(t, "18:00", class.StartTime)
		default:
			t.Fatalf("unexpected class %q", class.Name)
		}
	}
}

func TestScheduleGenerateSkipsExisting(t *testing.T) {
	existing := &entity.Class{
		BaseSimple:      entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:            "Pilates Mat",
		Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		MaxParticipants: 10,
	}
	classRepo := &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{existing.ID: existing}}
	repo := &repository.Repository{
		Class: classRepo,
		TemplateClass: &fakeTemplateRepo{templates: []*entity.TemplateClass{
			template("Pilates Mat", 0, "09:00", true),
		}},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	created, err := svc.Generate(context.Background(), &request.GenerateScheduleRequest{
		From: "2026-09-07",
		To:   "2026-09-13",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, created, "slot already materialized")
	assert.Empty(t, classRepo.created)
}

func TestScheduleGenerateRejectsReversedRange(t *testing.T) {
	repo := &repository.Repository{
		Class:         &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{}},
		TemplateClass: &fakeTemplateRepo{},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	_, err := svc.Generate(context.Background(), &request.GenerateScheduleRequest{
		From: "2026-09-20",
		To:   "2026-09-07",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
