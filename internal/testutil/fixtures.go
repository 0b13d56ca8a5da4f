package testutil

import (
	"testing"
	"time"

	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/internal/utils"
	"gorm.io/gorm"
)

// CreateTestUser persists a user with its credential, option and detail rows
// and returns the user. Password is hashed with the given hasher.
func CreateTestUser(t *testing.T, db *gorm.DB, hasher *utils.Hasher, username, email, password string) *models.User {
	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("Failed to generate salt: %v", err)
	}

	user := &models.User{
		Email:    email,
		Username: username,
	}
	cred := &models.UserCredential{
		Salt:   salt,
		Digest: hasher.Hash(password, salt),
	}

	repo := repository.NewUserRepository(db)
	if err := repo.CreateWithDependents(user, cred, &models.UserOption{}, &models.UserDetail{}); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// GrantTestPermission ensures the named permission exists and links it to the
// user.
func GrantTestPermission(t *testing.T, db *gorm.DB, userID uint64, name string) {
	permissionRepo := repository.NewPermissionRepository(db)

	permission, err := permissionRepo.GetByName(name)
	if err != nil {
		t.Fatalf("Failed to look up permission %s: %v", name, err)
	}
	if permission == nil {
		permission = &models.Permission{Name: name, Description: name}
		if err := permissionRepo.Create(permission); err != nil {
			t.Fatalf("Failed to create permission %s: %v", name, err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.GrantPermission(userID, permission.ID); err != nil {
		t.Fatalf("Failed to grant permission %s: %v", name, err)
	}
}

// CreateTestCategory persists a category.
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// CreateTestBlog persists a blog for the author. Published blogs get the full
// reviewed/approved/published ladder stamped.
func CreateTestBlog(t *testing.T, db *gorm.DB, authorID uint64, title string, published bool) *models.Blog {
	blog := &models.Blog{
		AuthorID: authorID,
		Title:    title,
		Content:  "test content for " + title,
	}
	if published {
		now := time.Now()
		blog.Reviewed, blog.ReviewedAt = true, &now
		blog.Approved, blog.ApprovedAt = true, &now
		blog.Published, blog.PublishedAt = true, &now
	}
	if err := db.Create(blog).Error; err != nil {
		t.Fatalf("Failed to create test blog: %v", err)
	}
	return blog
}

// CreateTestComment persists a comment on a blog.
func CreateTestComment(t *testing.T, db *gorm.DB, blogID, authorID uint64, content string) *models.Comment {
	comment := &models.Comment{
		BlogID:   blogID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
	return comment
}

// CreateTestMessage persists a message between two users.
func CreateTestMessage(t *testing.T, db *gorm.DB, senderID, receiverID uint64, content string) *models.Message {
	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := db.Create(message).Error; err != nil {
		t.Fatalf("Failed to create test message: %v", err)
	}
	return message
}
