package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPost handles GET /api/posts/:postId
// @Summary Get a post
// @Description Like count and comments, oldest comment first
// @Tags posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} models.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	detail, err := s.queryService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// GetAllPosts handles GET /api/all_posts
// @Summary List the caller's posts
// @Description Newest first, each with its comments
// @Tags posts
// @Produce json
// @Success 200 {array} models.PostSummary
// @Failure 404 {object} models.ErrorResponse
// @Router /all_posts [get]
// @Security BearerAuth
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	posts, err := s.queryService.GetAllPostsByUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}
