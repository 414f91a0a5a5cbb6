package service_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/petmily-app/backend-go/internal/database/models"
	"github.com/petmily-app/backend-go/internal/database/repository"
	"github.com/petmily-app/backend-go/internal/database/service"
)

func newPostService(t *testing.T) (service.PostService, *gorm.DB) {
	db := setupTestDB(t)
	svc := service.NewPostService(
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
		repository.NewReportRepository(db),
		testLogger(),
	)
	return svc, db
}

func TestPostService_CreateAndGet(t *testing.T) {
	svc, db := newPostService(t)
	seedUser(t, db, "author@example.com", models.RoleUser)

	post, err := svc.Create("author@example.com", "My dog", "He is good", models.CategoryFree)
	require.NoError(t, err)
	require.NotZero(t, post.ID)

	found, err := svc.GetByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "My dog", found.Title)

	// A missing post is (nil, nil), not an error
	missing, err := svc.GetByID(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostService_ListByCategory_Pagination(t *testing.T) {
	svc, db := newPostService(t)
	seedUser(t, db, "author@example.com", models.RoleUser)

	for i := 0; i < 15; i++ {
		_, err := svc.Create("author@example.com", fmt.Sprintf("post %d", i), "body", models.CategoryFree)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		page      int
		wantCount int
	}{
		{"first page is full", 1, 10},
		{"second page holds the remainder", 2, 5},
		{"past the end is empty", 3, 0},
		{"page zero falls back to page one", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ListByCategory(models.CategoryFree, tt.page)
			require.NoError(t, err)
			assert.Equal(t, 15, result.Total)
			assert.Equal(t, 10, result.PageSize)
			assert.Len(t, result.Posts, tt.wantCount)
		})
	}
}

func TestPostService_UpdateOwnership(t *testing.T) {
	svc, db := newPostService(t)
	seedUser(t, db, "author@example.com", models.RoleUser)

	post, err := svc.Create("author@example.com", "title", "body", models.CategoryInfo)
	require.NoError(t, err)

	err = svc.Update(post.ID, "stranger@example.com", "hijacked", "body")
	assert.ErrorIs(t, err, repository.ErrPostNotFound)

	require.NoError(t, svc.Update(post.ID, "author@example.com", "edited", "body"))

	err = svc.Delete(post.ID, "stranger@example.com")
	assert.ErrorIs(t, err, repository.ErrPostNotFound)

	require.NoError(t, svc.Delete(post.ID, "author@example.com"))
}

func TestPostService_Report(t *testing.T) {
	svc, db := newPostService(t)
	seedUser(t, db, "author@example.com", models.RoleUser)
	seedUser(t, db, "reporter@example.com", models.RoleUser)

	post, err := svc.Create("author@example.com", "spam", "buy now", models.CategoryFree)
	require.NoError(t, err)

	link, err := svc.Report(post.ID, "spam content", "reporter@example.com")
	require.NoError(t, err)
	assert.Equal(t, post.ID, link.PostID)

	var reports int64
	require.NoError(t, db.Model(&models.Report{}).Count(&reports).Error)
	assert.EqualValues(t, 1, reports)
	var links int64
	require.NoError(t, db.Model(&models.ReportPost{}).Count(&links).Error)
	assert.EqualValues(t, 1, links)
}

func TestPostService_Report_SelfReportRejected(t *testing.T) {
	svc, db := newPostService(t)
	seedUser(t, db, "author@example.com", models.RoleUser)

	post, err := svc.Create("author@example.com", "title", "body", models.CategoryFree)
	require.NoError(t, err)

	_, err = svc.Report(post.ID, "reason", "author@example.com")
	assert.ErrorIs(t, err, service.ErrSelfReport)

	// The rejected report must leave no rows behind
	var reports int64
	require.NoError(t, db.Model(&models.Report{}).Count(&reports).Error)
	assert.EqualValues(t, 0, reports)
	var links int64
	require.NoError(t, db.Model(&models.ReportPost{}).Count(&links).Error)
	assert.EqualValues(t, 0, links)
}

func TestPostService_Report_MissingPost(t *testing.T) {
	svc, db := newPostService(t)
	seedUser(t, db, "reporter@example.com", models.RoleUser)

	_, err := svc.Report(9999, "reason", "reporter@example.com")
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestPostService_Comments(t *testing.T) {
	svc, db := newPostService(t)
	seedUser(t, db, "author@example.com", models.RoleUser)
	seedUser(t, db, "reader@example.com", models.RoleUser)

	post, err := svc.Create("author@example.com", "title", "body", models.CategoryFree)
	require.NoError(t, err)

	comment, err := svc.CreateComment(post.ID, "reader@example.com", "nice dog")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)

	_, err = svc.CreateComment(9999, "reader@example.com", "orphan")
	assert.ErrorIs(t, err, repository.ErrPostNotFound)

	comments, err := svc.ListComments(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice dog", comments[0].Body)
}

func TestPostService_ReportComment(t *testing.T) {
	svc, db := newPostService(t)
	seedUser(t, db, "author@example.com", models.RoleUser)
	seedUser(t, db, "reporter@example.com", models.RoleUser)

	post, err := svc.Create("author@example.com", "title", "body", models.CategoryFree)
	require.NoError(t, err)
	comment, err := svc.CreateComment(post.ID, "author@example.com", "rude")
	require.NoError(t, err)

	_, err = svc.ReportComment(comment.ID, "abuse", "author@example.com")
	assert.ErrorIs(t, err, service.ErrSelfReport)

	link, err := svc.ReportComment(comment.ID, "abuse", "reporter@example.com")
	require.NoError(t, err)
	assert.Equal(t, comment.ID, link.CommentID)

	_, err = svc.ReportComment(9999, "abuse", "reporter@example.com")
	assert.ErrorIs(t, err, repository.ErrCommentNotFound)
}
