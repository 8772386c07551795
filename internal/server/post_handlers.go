package server

import (
	"murmur/internal/models"
	"murmur/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{title=string,description=string} true "Post"
// @Success 201 {object} models.CreatedPost
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
// @Security BearerAuth
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// DeletePost handles DELETE /api/posts/:postId
// @Summary Delete a post
// @Description Only the creator may delete a post
// @Tags posts
// @Produce plain
// @Param postId path int true "Post ID"
// @Success 200 {string} string "Deleted the post!"
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId} [delete]
// @Security BearerAuth
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	msg, err := s.postService.DeletePost(c.UserContext(), postID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.SendString(msg)
}

// LikePost handles POST /api/like/:postId
// @Summary Like a post
// @Tags posts
// @Produce plain
// @Param postId path int true "Post ID"
// @Success 200 {string} string "Liked the post!"
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /like/{postId} [post]
// @Security BearerAuth
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	msg, err := s.postService.LikePost(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.SendString(msg)
}

// UnlikePost handles POST /api/unlike/:postId
// @Summary Unlike a post
// @Tags posts
// @Produce plain
// @Param postId path int true "Post ID"
// @Success 200 {string} string "Post unliked!"
// @Failure 409 {object} models.ErrorResponse
// @Router /unlike/{postId} [post]
// @Security BearerAuth
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	msg, err := s.postService.UnlikePost(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.SendString(msg)
}

// AddComment handles POST /api/comment/:postId
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce plain
// @Param postId path int true "Post ID"
// @Param request body object{comment=string} true "Comment"
// @Success 201 {string} string "Posted comment"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comment/{postId} [post]
// @Security BearerAuth
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.postService.AddComment(c.UserContext(), postID, currentUserID(c), req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).SendString(msg)
}
