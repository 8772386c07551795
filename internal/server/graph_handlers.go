package server

import (
	"github.com/gofiber/fiber/v2"
)

// Follow handles POST /api/follow/:userId
// @Summary Follow a user
// @Tags graph
// @Produce plain
// @Param userId path int true "User ID"
// @Success 200 {string} string "Success!"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /follow/{userId} [post]
// @Security BearerAuth
func (s *Server) Follow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	msg, err := s.graphService.Follow(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.SendString(msg)
}

// Unfollow handles POST /api/unfollow/:userId
// @Summary Unfollow a user
// @Description Succeeds even when the caller was not following the user
// @Tags graph
// @Produce plain
// @Param userId path int true "User ID"
// @Success 200 {string} string "Success!"
// @Failure 404 {object} models.ErrorResponse
// @Router /unfollow/{userId} [post]
// @Security BearerAuth
func (s *Server) Unfollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	msg, err := s.graphService.Unfollow(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.SendString(msg)
}

// GetFollowers handles GET /api/users/:userId/followers
// @Summary List followers
// @Tags graph
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} models.FollowEntry
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{userId}/followers [get]
// @Security BearerAuth
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	entries, err := s.graphService.Followers(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// GetFollowing handles GET /api/users/:userId/following
// @Summary List followed users
// @Tags graph
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} models.FollowEntry
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{userId}/following [get]
// @Security BearerAuth
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	entries, err := s.graphService.Following(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// GetUserSummary handles POST /api/user
// @Summary Current user summary
// @Tags graph
// @Produce json
// @Success 200 {object} models.UserSummary
// @Failure 401 {object} models.ErrorResponse
// @Router /user [post]
// @Security BearerAuth
func (s *Server) GetUserSummary(c *fiber.Ctx) error {
	summary, err := s.graphService.Summary(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
