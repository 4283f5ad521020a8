package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prepsync/prepsync/internal/model"
	"github.com/prepsync/prepsync/internal/repository"
)

var (
	ErrGroupNameRequired = errors.New("group name is required")
	ErrNotGroupAdmin     = errors.New("only the group admin can do this")
	ErrAdminCannotLeave  = errors.New("the group admin cannot leave the group")
)

type GroupService struct {
	groupRepository      repository.GroupRepository
	completionRepository repository.CompletionRepository
	resourceService      *ResourceService
}

func NewGroupService(groupRepository repository.GroupRepository, completionRepository repository.CompletionRepository, resourceService *ResourceService) *GroupService {
	return &GroupService{
		groupRepository:      groupRepository,
		completionRepository: completionRepository,
		resourceService:      resourceService,
	}
}

func (s *GroupService) Create(userID, name, description string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGroupNameRequired
	}

	group := &model.Group{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	err := s.groupRepository.Create(group)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

func (s *GroupService) Join(userID, groupID string) (*model.Group, error) {
	group, err := s.groupRepository.ByID(groupID)
	if err != nil {
		return nil, err
	}

	err = s.groupRepository.AddMember(groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to join group: %w", err)
	}

	return group, nil
}

func (s *GroupService) Leave(userID, groupID string) error {
	group, err := s.groupRepository.ByID(groupID)
	if err != nil {
		return err
	}

	if group.CreatedBy == userID {
		return ErrAdminCannotLeave
	}

	return s.groupRepository.RemoveMember(groupID, userID)
}

func (s *GroupService) MyGroups(userID string) ([]*model.Group, error) {
	return s.groupRepository.GroupsByUser(userID)
}

// Details returns the group with admin and member summaries. Members only.
func (s *GroupService) Details(userID, groupID string) (*model.GroupDetails, error) {
	group, err := s.groupRepository.ByID(groupID)
	if err != nil {
		return nil, err
	}

	member, err := s.groupRepository.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}

	members, err := s.groupRepository.Members(groupID)
	if err != nil {
		return nil, err
	}

	details := &model.GroupDetails{Group: *group, Members: members}
	for _, m := range members {
		if m.ID == group.CreatedBy {
			details.Admin = m
			break
		}
	}

	return details, nil
}

func (s *GroupService) Delete(userID, groupID string) error {
	group, err := s.groupRepository.ByID(groupID)
	if err != nil {
		return err
	}

	if group.CreatedBy != userID {
		return ErrNotGroupAdmin
	}

	// The cascade removes the association rows but would leave resources
	// shared only with this group, and their stored objects, orphaned.
	err = s.resourceService.CleanupGroup(groupID)
	if err != nil {
		return err
	}

	return s.groupRepository.Delete(groupID)
}

// Leaderboard ranks group members by streak, then by goals completed within
// the group. Members only.
func (s *GroupService) Leaderboard(userID, groupID string) ([]model.LeaderboardEntry, error) {
	_, err := s.groupRepository.ByID(groupID)
	if err != nil {
		return nil, err
	}

	member, err := s.groupRepository.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotGroupMember
	}

	entries, err := s.groupRepository.MembersWithStreak(groupID)
	if err != nil {
		return nil, err
	}

	counts, err := s.completionRepository.CountPerMemberInGroup(groupID)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].TotalCompletedInGroup = counts[entries[i].UserID]
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Streak != entries[j].Streak {
			return entries[i].Streak > entries[j].Streak
		}
		return entries[i].TotalCompletedInGroup > entries[j].TotalCompletedInGroup
	})

	return entries, nil
}
