package repository

import (
	"context"
	"regexp"
	"testing"

	"murmur/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPost_Query(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE post_id = $1 ORDER BY id ASC`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "comment", "user_id", "post_id"}).
			AddRow(1, "Comment 1", 101, 1).
			AddRow(2, "Comment 2", 102, 1))

	// Preload User for each comment
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
		WithArgs(101, 102).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "mail"}).
			AddRow(101, "user101", "u101@x.com").
			AddRow(102, "user102", "u102@x.com"))

	comments, err := repo.ListByPost(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, models.CommentView{Comment: "Comment 1", CommentBy: "u101@x.com"}, comments[0].View())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_CreateForPost(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "a@x.com")
	bob := createUser(t, db, "bob", "b@x.com")
	post := createPost(t, db, alice.ID, "Hello")

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, repo.CreateForPost(ctx, &models.Comment{PostID: post.ID, UserID: bob.ID, Text: text}))
	}

	err := repo.CreateForPost(ctx, &models.Comment{PostID: 999, UserID: bob.ID, Text: "orphan"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	for i, text := range []string{"first", "second", "third"} {
		assert.Equal(t, text, comments[i].Text)
		assert.Equal(t, "b@x.com", comments[i].User.Mail)
	}
}
