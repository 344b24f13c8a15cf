package provision

import (
	"context"
	"testing"

	membermodels "slack_deals/internal/api/member/models"
	"slack_deals/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func defaultMember(slackID string) membermodels.Member {
	return membermodels.Member{
		ID:              primitive.NewObjectID(),
		SlackUserId:     slackID,
		IsDefaultMember: true,
		IsActive:        true,
	}
}

func TestResolveMembers_Union(t *testing.T) {
	repo := &fakeRepo{
		defaultMembers: []membermodels.Member{defaultMember("U1"), defaultMember("U2")},
	}
	resolver := NewMembershipResolver(repo)

	ids, err := resolver.ResolveMembers(context.Background(), primitive.NewObjectID(), []string{"U2", "U3"})
	require.NoError(t, err)
	// {U1, U2} ∪ {U2, U3}: U2 chỉ xuất hiện 1 lần
	assert.ElementsMatch(t, []string{"U1", "U2", "U3"}, ids)
}

func TestResolveMembers_EmptyInputs(t *testing.T) {
	resolver := NewMembershipResolver(&fakeRepo{})

	ids, err := resolver.ResolveMembers(context.Background(), primitive.NewObjectID(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestResolveMembers_ExplicitOnly(t *testing.T) {
	resolver := NewMembershipResolver(&fakeRepo{})

	ids, err := resolver.ResolveMembers(context.Background(), primitive.NewObjectID(), []string{"U9", "U9", ""})
	require.NoError(t, err)
	// Trùng lặp và id rỗng bị loại
	assert.Equal(t, []string{"U9"}, ids)
}

func TestResolveMembers_SkipsEmptySlackIds(t *testing.T) {
	repo := &fakeRepo{
		defaultMembers: []membermodels.Member{defaultMember("U1"), defaultMember("")},
	}
	resolver := NewMembershipResolver(repo)

	ids, err := resolver.ResolveMembers(context.Background(), primitive.NewObjectID(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"U1"}, ids)
}

func TestResolveMembers_RepoErrorPropagates(t *testing.T) {
	repo := &fakeRepoWithMemberErr{err: common.ErrConnection}
	resolver := NewMembershipResolver(repo)

	_, err := resolver.ResolveMembers(context.Background(), primitive.NewObjectID(), []string{"U1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConnection)
}

// fakeRepoWithMemberErr bọc fakeRepo để ép lỗi khi đọc default members.
type fakeRepoWithMemberErr struct {
	fakeRepo
	err error
}

func (f *fakeRepoWithMemberErr) FindDefaultMembers(_ context.Context, _ primitive.ObjectID) ([]membermodels.Member, error) {
	return nil, f.err
}
