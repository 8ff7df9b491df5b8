package policy

import (
	"testing"

	"quill/models"
	"quill/services"

	"github.com/stretchr/testify/assert"
)

func identity(id uint) models.Identity {
	return models.IdentityOf(&models.User{ID: id, Email: "u@x.com", Name: "U"})
}

func TestAdminActionsRequireAdminID(t *testing.T) {
	p := New(1)
	identities := map[string]models.Identity{
		"anonymous": models.Anonymous,
		"admin":     identity(1),
		"user 2":    identity(2),
		"user 10":   identity(10),
	}

	for _, action := range []Action{CreatePost, EditPost, DeletePost} {
		for name, who := range identities {
			decision := p.Authorize(action, who)
			if name == "admin" {
				assert.True(t, decision.Allowed, "%s by %s", action, name)
				assert.NoError(t, decision.Reason)
				continue
			}
			assert.False(t, decision.Allowed, "%s by %s", action, name)
			assert.ErrorIs(t, decision.Reason, services.ErrForbidden)
		}
	}
}

func TestAdminIDIsConfiguration(t *testing.T) {
	p := New(5)
	assert.False(t, p.Authorize(CreatePost, identity(1)).Allowed)
	assert.True(t, p.Authorize(CreatePost, identity(5)).Allowed)
}

func TestCommentRequiresAuthentication(t *testing.T) {
	p := New(1)

	decision := p.Authorize(CreateComment, models.Anonymous)
	assert.False(t, decision.Allowed)
	assert.ErrorIs(t, decision.Reason, services.ErrAuthenticationRequired)

	assert.True(t, p.Authorize(CreateComment, identity(3)).Allowed)
	assert.True(t, p.Authorize(CreateComment, identity(1)).Allowed)
}

func TestReadsAreOpen(t *testing.T) {
	p := New(1)
	for _, action := range []Action{ViewPost, ListPosts, About, Contact} {
		assert.True(t, p.Authorize(action, models.Anonymous).Allowed, action)
		assert.True(t, p.Authorize(action, identity(9)).Allowed, action)
	}
}

func TestUnknownActionIsForbidden(t *testing.T) {
	decision := New(1).Authorize(Action("drop_tables"), identity(1))
	assert.False(t, decision.Allowed)
	assert.ErrorIs(t, decision.Reason, services.ErrForbidden)
}
