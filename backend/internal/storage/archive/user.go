package archive

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
)

// lookupColumns whitelists the columns a user may be looked up by.
var lookupColumns = map[domain.UserLookup]string{
	domain.LookupById:       "id",
	domain.LookupByUsername: "username",
	domain.LookupByNickname: "nickname",
	domain.LookupByAvatar:   "avatar",
}

// GetUser finds a user by one of its identifying columns. Nicknames and
// avatars are not unique; the lowest id wins.
func (s *Storage) GetUser(ctx context.Context, kind domain.UserLookup, value string) (domain.User, error) {
	column, ok := lookupColumns[kind]
	if !ok {
		return domain.User{}, internal_errors.Unprocessable("unknown user lookup %q", kind)
	}

	var arg any = value
	if kind == domain.LookupById {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return domain.User{}, internal_errors.NotFound("User")
		}
		arg = id
	}

	var user domain.User
	err := s.getOne(ctx, "user_by_"+column, &user, `
		SELECT id, username, nickname, avatar
		FROM pr_user
		WHERE `+column+` = ?
		ORDER BY id
		LIMIT 1`, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User")
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetUsersByIds resolves a batch of ids. Unknown ids are absent from the result.
func (s *Storage) GetUsersByIds(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.User, error) {
	users := make(map[domain.UserId]domain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var rows []domain.User
	if err := s.selectAll(ctx, "users_by_id", &rows, `
		SELECT id, username, nickname, avatar
		FROM pr_user
		WHERE id IN (?)`, ids); err != nil {
		return nil, err
	}
	for _, u := range rows {
		users[u.Id] = u
	}
	return users, nil
}
