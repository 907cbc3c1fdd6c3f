// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-pcc/pkg/viewstate"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/datatypes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

// Key prefixes. Child records embed the parent UID in the key so a
// prefix scan returns exactly one parent's children.
const (
	prefixProject     = "project:"     // project:<slug>
	prefixSettings    = "settings:"    // settings:<projectUID>
	prefixCommittee   = "committee:"   // committee:<uid>
	prefixMember      = "member:"      // member:<committeeUID>:<uid>
	prefixMailingList = "mlist:"       // mlist:<uid>
	prefixVote        = "vote:"        // vote:<uid>
	prefixSurvey      = "survey:"      // survey:<uid>
	prefixMeeting     = "meeting:"     // meeting:<uid>
	prefixRegistrant  = "registrant:"  // registrant:<meetingUID>:<uid>
	prefixRSVP        = "rsvp:"        // rsvp:<meetingUID>:<uid>
	prefixAttachment  = "attachment:"  // attachment:<meetingUID>:<uid>
	prefixPastMeeting = "pastmeeting:" // pastmeeting:<uid>
	prefixParticipant = "participant:" // participant:<pastMeetingUID>:<uid>
	prefixUser        = "user:"        // user:<username>
	prefixPermission  = "perm:"        // perm:<projectUID>:<username>
	prefixOrg         = "org:"         // org:<id>
)

// Store implements every downstream interface over one BadgerDB.
type Store struct {
	db   *badger.DB
	stop chan struct{}
	log  *slog.Logger
}

var (
	_ downstream.ProjectService      = (*Store)(nil)
	_ downstream.MeetingService      = (*Store)(nil)
	_ downstream.IdentityService     = (*Store)(nil)
	_ downstream.OrganizationService = (*Store)(nil)
)

// Open opens (or creates) the demo store.
func Open(cfg Config) (*Store, error) {
	db, stop, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Store{db: db, stop: stop, log: log}, nil
}

// Close stops GC and closes the database.
func (s *Store) Close() error {
	close(s.stop)
	return s.db.Close()
}

// -- generic record plumbing --

func put(db *badger.DB, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func get[T any](db *badger.DB, key string, notFound *datatypes.ServiceError) (*T, error) {
	var out T
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("%w: %w", datatypes.ErrInternal, err)
	}
	return &out, nil
}

func scan[T any](db *badger.DB, prefix string) ([]T, error) {
	out := []T{}
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var record T
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			out = append(out, record)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", datatypes.ErrInternal, err)
	}
	return out, nil
}

func del(db *badger.DB, key string, notFound *datatypes.ServiceError) error {
	return db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return notFound
			}
			return fmt.Errorf("%w: %w", datatypes.ErrInternal, err)
		}
		return txn.Delete([]byte(key))
	})
}

func dropPrefix(db *badger.DB, prefix string) error {
	return db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		var keys [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

func countPrefix(db *badger.DB, prefix string) int {
	count := 0
	db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count
}

func newUID() string {
	return uuid.NewString()
}

// -- ProjectService --

func (s *Store) ListProjects(_ context.Context, filter datatypes.ProjectFilter) ([]datatypes.Project, error) {
	projects, err := scan[datatypes.Project](s.db, prefixProject)
	if err != nil {
		s.log.Error("project scan failed", "error", err)
		return []datatypes.Project{}, nil
	}
	if filter.ParentUID != "" {
		kept := projects[:0]
		for _, p := range projects {
			if p.ParentUID == filter.ParentUID {
				kept = append(kept, p)
			}
		}
		projects = kept
	}
	projects = viewstate.FilterContains(projects, filter.Search, func(p datatypes.Project) []string {
		return []string{p.Name, p.Slug, p.Description}
	})
	return projects, nil
}

func (s *Store) GetProject(_ context.Context, slug string) (*datatypes.Project, error) {
	return get[datatypes.Project](s.db, prefixProject+slug, datatypes.ErrProjectNotFound)
}

func (s *Store) PutProject(project datatypes.Project) error {
	if project.UID == "" {
		project.UID = newUID()
	}
	return put(s.db, prefixProject+project.Slug, project)
}

func (s *Store) GetProjectSettings(_ context.Context, projectUID string) (*datatypes.ProjectSettings, error) {
	return get[datatypes.ProjectSettings](s.db, prefixSettings+projectUID, datatypes.ErrProjectNotFound)
}

func (s *Store) UpdateProjectSettings(_ context.Context, settings datatypes.ProjectSettings) error {
	return put(s.db, prefixSettings+settings.ProjectUID, settings)
}

// -- committees --

func (s *Store) ListCommittees(_ context.Context, projectUID string) ([]datatypes.Committee, error) {
	committees, err := scan[datatypes.Committee](s.db, prefixCommittee)
	if err != nil {
		s.log.Error("committee scan failed", "error", err)
		return []datatypes.Committee{}, nil
	}
	out := []datatypes.Committee{}
	for _, c := range committees {
		if projectUID == "" || c.ProjectUID == projectUID {
			c.TotalMembers = countPrefix(s.db, prefixMember+c.UID+":")
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) GetCommittee(_ context.Context, uid string) (*datatypes.Committee, error) {
	committee, err := get[datatypes.Committee](s.db, prefixCommittee+uid, datatypes.ErrCommitteeNotFound)
	if err != nil {
		return nil, err
	}
	committee.TotalMembers = countPrefix(s.db, prefixMember+uid+":")
	return committee, nil
}

func (s *Store) CreateCommittee(_ context.Context, committee datatypes.Committee) (*datatypes.Committee, error) {
	committee.UID = newUID()
	if err := put(s.db, prefixCommittee+committee.UID, committee); err != nil {
		return nil, err
	}
	return &committee, nil
}

func (s *Store) UpdateCommittee(ctx context.Context, committee datatypes.Committee) (*datatypes.Committee, error) {
	if _, err := s.GetCommittee(ctx, committee.UID); err != nil {
		return nil, err
	}
	if err := put(s.db, prefixCommittee+committee.UID, committee); err != nil {
		return nil, err
	}
	return &committee, nil
}

func (s *Store) DeleteCommittee(_ context.Context, uid string) error {
	if err := del(s.db, prefixCommittee+uid, datatypes.ErrCommitteeNotFound); err != nil {
		return err
	}
	// Seats die with the committee.
	return dropPrefix(s.db, prefixMember+uid+":")
}

func (s *Store) ListCommitteeMembers(_ context.Context, committeeUID string) ([]datatypes.CommitteeMember, error) {
	members, err := scan[datatypes.CommitteeMember](s.db, prefixMember+committeeUID+":")
	if err != nil {
		s.log.Error("member scan failed", "error", err)
		return []datatypes.CommitteeMember{}, nil
	}
	return members, nil
}

func (s *Store) AddCommitteeMember(ctx context.Context, member datatypes.CommitteeMember) (*datatypes.CommitteeMember, error) {
	if _, err := s.GetCommittee(ctx, member.CommitteeUID); err != nil {
		return nil, err
	}
	member.UID = newUID()
	if err := put(s.db, prefixMember+member.CommitteeUID+":"+member.UID, member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Store) UpdateCommitteeMember(_ context.Context, member datatypes.CommitteeMember) (*datatypes.CommitteeMember, error) {
	key := prefixMember + member.CommitteeUID + ":" + member.UID
	if _, err := get[datatypes.CommitteeMember](s.db, key, datatypes.ErrRegistrantNotFound); err != nil {
		return nil, err
	}
	if err := put(s.db, key, member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Store) RemoveCommitteeMember(_ context.Context, committeeUID, memberUID string) error {
	return del(s.db, prefixMember+committeeUID+":"+memberUID, datatypes.ErrRegistrantNotFound)
}

// -- mailing lists --

func (s *Store) ListMailingLists(_ context.Context, projectUID string) ([]datatypes.MailingList, error) {
	lists, err := scan[datatypes.MailingList](s.db, prefixMailingList)
	if err != nil {
		s.log.Error("mailing list scan failed", "error", err)
		return []datatypes.MailingList{}, nil
	}
	out := []datatypes.MailingList{}
	for _, l := range lists {
		if projectUID == "" || l.ProjectUID == projectUID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) GetMailingList(_ context.Context, uid string) (*datatypes.MailingList, error) {
	return get[datatypes.MailingList](s.db, prefixMailingList+uid, datatypes.ErrMailingListNotFound)
}

func (s *Store) CreateMailingList(_ context.Context, list datatypes.MailingList) (*datatypes.MailingList, error) {
	list.UID = newUID()
	if err := put(s.db, prefixMailingList+list.UID, list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *Store) UpdateMailingList(ctx context.Context, list datatypes.MailingList) (*datatypes.MailingList, error) {
	if _, err := s.GetMailingList(ctx, list.UID); err != nil {
		return nil, err
	}
	if err := put(s.db, prefixMailingList+list.UID, list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *Store) DeleteMailingList(_ context.Context, uid string) error {
	return del(s.db, prefixMailingList+uid, datatypes.ErrMailingListNotFound)
}

// -- votes and surveys --

func (s *Store) ListVotes(_ context.Context, projectUID string) ([]datatypes.Vote, error) {
	votes, err := scan[datatypes.Vote](s.db, prefixVote)
	if err != nil {
		s.log.Error("vote scan failed", "error", err)
		return []datatypes.Vote{}, nil
	}
	out := []datatypes.Vote{}
	for _, v := range votes {
		if projectUID == "" || v.ProjectUID == projectUID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Store) GetVote(_ context.Context, uid string) (*datatypes.Vote, error) {
	return get[datatypes.Vote](s.db, prefixVote+uid, datatypes.ErrVoteNotFound)
}

func (s *Store) CreateVote(_ context.Context, vote datatypes.Vote) (*datatypes.Vote, error) {
	vote.UID = newUID()
	if vote.Status == "" {
		vote.Status = datatypes.VoteStatusOpen
	}
	if err := put(s.db, prefixVote+vote.UID, vote); err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s *Store) UpdateVote(ctx context.Context, vote datatypes.Vote) (*datatypes.Vote, error) {
	if _, err := s.GetVote(ctx, vote.UID); err != nil {
		return nil, err
	}
	if err := put(s.db, prefixVote+vote.UID, vote); err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s *Store) DeleteVote(_ context.Context, uid string) error {
	return del(s.db, prefixVote+uid, datatypes.ErrVoteNotFound)
}

func (s *Store) ListSurveys(_ context.Context, projectUID string) ([]datatypes.Survey, error) {
	surveys, err := scan[datatypes.Survey](s.db, prefixSurvey)
	if err != nil {
		s.log.Error("survey scan failed", "error", err)
		return []datatypes.Survey{}, nil
	}
	out := []datatypes.Survey{}
	for _, sv := range surveys {
		if projectUID == "" || sv.ProjectUID == projectUID {
			out = append(out, sv)
		}
	}
	return out, nil
}

// -- MeetingService --

func (s *Store) ListMeetings(_ context.Context, filter datatypes.MeetingFilter) ([]datatypes.Meeting, error) {
	meetings, err := scan[datatypes.Meeting](s.db, prefixMeeting)
	if err != nil {
		s.log.Error("meeting scan failed", "error", err)
		return []datatypes.Meeting{}, nil
	}
	out := []datatypes.Meeting{}
	for _, m := range meetings {
		if filter.ProjectUID != "" && m.ProjectUID != filter.ProjectUID {
			continue
		}
		if filter.CommitteeUID != "" && !slices.Contains(m.CommitteeUIDs, filter.CommitteeUID) {
			continue
		}
		m.RegistrantCount = countPrefix(s.db, prefixRegistrant+m.UID+":")
		out = append(out, m)
	}
	out = viewstate.FilterContains(out, filter.Search, func(m datatypes.Meeting) []string {
		return []string{m.Title, m.Description}
	})
	return out, nil
}

func (s *Store) GetMeeting(_ context.Context, uid string) (*datatypes.Meeting, error) {
	meeting, err := get[datatypes.Meeting](s.db, prefixMeeting+uid, datatypes.ErrMeetingNotFound)
	if err != nil {
		return nil, err
	}
	meeting.RegistrantCount = countPrefix(s.db, prefixRegistrant+uid+":")
	return meeting, nil
}

func (s *Store) CreateMeeting(_ context.Context, meeting datatypes.Meeting) (*datatypes.Meeting, error) {
	meeting.UID = newUID()
	if err := put(s.db, prefixMeeting+meeting.UID, meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (s *Store) UpdateMeeting(ctx context.Context, meeting datatypes.Meeting) (*datatypes.Meeting, error) {
	if _, err := s.GetMeeting(ctx, meeting.UID); err != nil {
		return nil, err
	}
	if err := put(s.db, prefixMeeting+meeting.UID, meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (s *Store) DeleteMeeting(_ context.Context, uid string) error {
	if err := del(s.db, prefixMeeting+uid, datatypes.ErrMeetingNotFound); err != nil {
		return err
	}
	for _, prefix := range []string{prefixRegistrant, prefixRSVP, prefixAttachment} {
		if err := dropPrefix(s.db, prefix+uid+":"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListRegistrants(_ context.Context, meetingUID string) ([]datatypes.Registrant, error) {
	registrants, err := scan[datatypes.Registrant](s.db, prefixRegistrant+meetingUID+":")
	if err != nil {
		s.log.Error("registrant scan failed", "error", err)
		return []datatypes.Registrant{}, nil
	}
	return registrants, nil
}

func (s *Store) AddRegistrant(ctx context.Context, registrant datatypes.Registrant) (*datatypes.Registrant, error) {
	if _, err := s.GetMeeting(ctx, registrant.MeetingUID); err != nil {
		return nil, err
	}
	registrant.UID = newUID()
	if err := put(s.db, prefixRegistrant+registrant.MeetingUID+":"+registrant.UID, registrant); err != nil {
		return nil, err
	}
	return &registrant, nil
}

func (s *Store) RemoveRegistrant(_ context.Context, meetingUID, registrantUID string) error {
	return del(s.db, prefixRegistrant+meetingUID+":"+registrantUID, datatypes.ErrRegistrantNotFound)
}

func (s *Store) ListRSVPs(_ context.Context, meetingUID string) ([]datatypes.RSVP, error) {
	rsvps, err := scan[datatypes.RSVP](s.db, prefixRSVP+meetingUID+":")
	if err != nil {
		s.log.Error("rsvp scan failed", "error", err)
		return []datatypes.RSVP{}, nil
	}
	return rsvps, nil
}

func (s *Store) PutRSVP(rsvp datatypes.RSVP) error {
	if rsvp.UID == "" {
		rsvp.UID = newUID()
	}
	return put(s.db, prefixRSVP+rsvp.MeetingUID+":"+rsvp.UID, rsvp)
}

func (s *Store) ListPastMeetings(_ context.Context, projectUID string) ([]datatypes.PastMeeting, error) {
	past, err := scan[datatypes.PastMeeting](s.db, prefixPastMeeting)
	if err != nil {
		s.log.Error("past meeting scan failed", "error", err)
		return []datatypes.PastMeeting{}, nil
	}
	out := []datatypes.PastMeeting{}
	for _, p := range past {
		if projectUID == "" || p.ProjectUID == projectUID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) GetPastMeeting(_ context.Context, uid string) (*datatypes.PastMeeting, error) {
	return get[datatypes.PastMeeting](s.db, prefixPastMeeting+uid, datatypes.ErrMeetingNotFound)
}

func (s *Store) PutPastMeeting(past datatypes.PastMeeting) error {
	if past.UID == "" {
		past.UID = newUID()
	}
	return put(s.db, prefixPastMeeting+past.UID, past)
}

func (s *Store) ListParticipants(_ context.Context, pastMeetingUID string) ([]datatypes.Participant, error) {
	participants, err := scan[datatypes.Participant](s.db, prefixParticipant+pastMeetingUID+":")
	if err != nil {
		s.log.Error("participant scan failed", "error", err)
		return []datatypes.Participant{}, nil
	}
	return participants, nil
}

func (s *Store) PutParticipant(participant datatypes.Participant) error {
	if participant.UID == "" {
		participant.UID = newUID()
	}
	key := prefixParticipant + participant.PastMeetingUID + ":" + participant.UID
	return put(s.db, key, participant)
}

func (s *Store) ListAttachments(_ context.Context, meetingUID string) ([]datatypes.Attachment, error) {
	attachments, err := scan[datatypes.Attachment](s.db, prefixAttachment+meetingUID+":")
	if err != nil {
		s.log.Error("attachment scan failed", "error", err)
		return []datatypes.Attachment{}, nil
	}
	return attachments, nil
}

func (s *Store) AddAttachment(ctx context.Context, attachment datatypes.Attachment) (*datatypes.Attachment, error) {
	if _, err := s.GetMeeting(ctx, attachment.MeetingUID); err != nil {
		return nil, err
	}
	if attachment.UID == "" {
		attachment.UID = newUID()
	}
	if err := put(s.db, prefixAttachment+attachment.MeetingUID+":"+attachment.UID, attachment); err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (s *Store) RemoveAttachment(_ context.Context, meetingUID, attachmentUID string) error {
	return del(s.db, prefixAttachment+meetingUID+":"+attachmentUID, datatypes.ErrAttachmentNotFound)
}

// -- IdentityService --

func (s *Store) SearchUsers(_ context.Context, query string) ([]datatypes.User, error) {
	users, err := scan[datatypes.User](s.db, prefixUser)
	if err != nil {
		s.log.Error("user scan failed", "error", err)
		return []datatypes.User{}, nil
	}
	return viewstate.FilterContains(users, query, func(u datatypes.User) []string {
		return []string{u.Username, u.FirstName, u.LastName, u.Email}
	}), nil
}

func (s *Store) GetUser(_ context.Context, username string) (*datatypes.User, error) {
	return get[datatypes.User](s.db, prefixUser+username, datatypes.ErrUserNotFound)
}

func (s *Store) PutUser(user datatypes.User) error {
	return put(s.db, prefixUser+user.Username, user)
}

func (s *Store) ListPermissions(_ context.Context, projectUID string) ([]datatypes.Permission, error) {
	permissions, err := scan[datatypes.Permission](s.db, prefixPermission+projectUID+":")
	if err != nil {
		s.log.Error("permission scan failed", "error", err)
		return []datatypes.Permission{}, nil
	}
	return permissions, nil
}

func (s *Store) PutPermission(_ context.Context, projectUID string, permission datatypes.Permission) error {
	// The grantee must exist in the identity records.
	if _, err := get[datatypes.User](s.db, prefixUser+permission.Username, datatypes.ErrUserNotFound); err != nil {
		return err
	}
	return put(s.db, prefixPermission+projectUID+":"+permission.Username, permission)
}

func (s *Store) DeletePermission(_ context.Context, projectUID, username string) error {
	return del(s.db, prefixPermission+projectUID+":"+username, datatypes.ErrUserNotFound)
}

// -- OrganizationService --

func (s *Store) SearchOrganizations(_ context.Context, name string) ([]datatypes.Organization, error) {
	orgs, err := scan[datatypes.Organization](s.db, prefixOrg)
	if err != nil {
		s.log.Error("organization scan failed", "error", err)
		return []datatypes.Organization{}, nil
	}
	return viewstate.FilterContains(orgs, name, func(o datatypes.Organization) []string {
		return []string{o.Name, o.Domain}
	}), nil
}

func (s *Store) PutOrganization(org datatypes.Organization) error {
	if org.ID == "" {
		org.ID = newUID()
	}
	return put(s.db, prefixOrg+org.ID, org)
}

func init() {
	// Guard against prefix collisions when keys are added.
	prefixes := []string{
		prefixProject, prefixSettings, prefixCommittee, prefixMember,
		prefixMailingList, prefixVote, prefixSurvey, prefixMeeting,
		prefixRegistrant, prefixRSVP, prefixAttachment, prefixPastMeeting,
		prefixParticipant, prefixUser, prefixPermission, prefixOrg,
	}
	for i, a := range prefixes {
		for j, b := range prefixes {
			if i != j && strings.HasPrefix(a, b) {
				panic(fmt.Sprintf("store: colliding key prefixes %q and %q", a, b))
			}
		}
	}
}
