package user

import (
	"github.com/giftbridge/platform/internal/auth"
	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/response"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func CreateUserHandler(c *fiber.Ctx) error {
	var body struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		Role      string `json:"role"`
		CompanyID *uint  `json:"company_id,omitempty"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Email == "" || body.Password == "" || body.Name == "" {
		return response.ValidationError(c, map[string]string{
			"email":    "email is required",
			"password": "password is required",
			"name":     "name is required",
		})
	}

	role := authz.RoleUser
	if body.Role != "" {
		parsed, err := authz.ParseRole(body.Role)
		if err != nil {
			return response.ValidationError(c, map[string]string{"role": err.Error()})
		}
		role = parsed
	}

	if body.CompanyID != nil {
		var company models.Company
		if err := database.DB.First(&company, *body.CompanyID).Error; err != nil {
			return response.NotFound(c, "Company")
		}
	}

	var existing models.User
	if err := database.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
		return response.Conflict(c, "User with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return response.InternalError(c, "Failed to hash password")
	}

	user := models.User{
		Email:     body.Email,
		Password:  string(hashedPassword),
		Name:      body.Name,
		Role:      role,
		CompanyID: body.CompanyID,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return response.InternalError(c, "Failed to create user")
	}

	database.DB.Preload("Company").First(&user, user.ID)
	user.Password = ""

	return response.Created(c, user, "User created successfully")
}

func ListUsersHandler(c *fiber.Ctx) error {
	query := database.DB.Preload("Company")

	// Non-admins only ever see their own company's users.
	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil {
			return response.Success(c, []models.User{}, "Users retrieved successfully")
		}
		query = query.Where("company_id = ?", *companyID)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return response.InternalError(c, "Failed to fetch users")
	}

	for i := range users {
		users[i].Password = ""
	}

	return response.Success(c, users, "Users retrieved successfully")
}

func GetUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var user models.User
	if err := database.DB.Preload("Company").First(&user, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	if auth.PrincipalRole(c) != authz.RoleAdmin {
		companyID := auth.PrincipalCompanyID(c)
		if companyID == nil || user.CompanyID == nil || *user.CompanyID != *companyID {
			return response.NotFound(c, "User")
		}
	}

	user.Password = ""

	return response.Success(c, user, "User retrieved successfully")
}

func UpdateUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var body struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Role      string `json:"role"`
		CompanyID *uint  `json:"company_id,omitempty"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	if body.Email != "" && body.Email != user.Email {
		var existing models.User
		if err := database.DB.Where("email = ? AND id != ?", body.Email, id).First(&existing).Error; err == nil {
			return response.Conflict(c, "Email already taken")
		}
		user.Email = body.Email
	}

	if body.Name != "" {
		user.Name = body.Name
	}

	if body.Role != "" {
		role, err := authz.ParseRole(body.Role)
		if err != nil {
			return response.ValidationError(c, map[string]string{"role": err.Error()})
		}
		user.Role = role
	}

	if body.CompanyID != nil {
		var company models.Company
		if err := database.DB.First(&company, *body.CompanyID).Error; err != nil {
			return response.NotFound(c, "Company")
		}
		user.CompanyID = body.CompanyID
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return response.InternalError(c, "Failed to update user")
	}

	database.DB.Preload("Company").First(&user, user.ID)
	user.Password = ""

	return response.Success(c, user, "User updated successfully")
}

// ChangePasswordHandler is guarded by the ownership middleware: only the
// account owner reaches it.
func ChangePasswordHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.NewPassword == "" {
		return response.ValidationError(c, map[string]string{
			"new_password": "new_password is required",
		})
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.CurrentPassword)) != nil {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return response.InternalError(c, "Failed to hash password")
	}

	user.Password = string(hashedPassword)
	if err := database.DB.Save(&user).Error; err != nil {
		return response.InternalError(c, "Failed to update password")
	}

	return response.Success(c, nil, "Password changed successfully")
}

func DeleteUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	if uint(id) == auth.PrincipalID(c) {
		return response.BadRequest(c, "Cannot delete your own account", nil)
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		return response.InternalError(c, "Failed to delete user")
	}

	return response.NoContent(c)
}
