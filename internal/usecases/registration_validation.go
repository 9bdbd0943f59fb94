package usecases

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
)

const (
	minTextRunes = 200
	maxTextRunes = 500
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

const (
	msgTeamRequired    = "请填写所有团队必填字段（团队名称、参赛赛道、作品名称、CoStrict UID）"
	msgTrackInvalid    = `参赛赛道必须为"技术挑战赛"或"创新应用赛"`
	msgTextLength      = "%s长度必须在200-500字之间"
	msgMembersRequired = "至少需要添加一名团队成员"
	msgCaptainRequired = "团队必须指定一名队长"
	msgMemberRequired  = "请填写%s的所有必填字段（姓名、学校/单位、学院/系别、专业与年级、联系电话、电子邮箱、项目角色）"
	msgMemberEmail     = "%s的邮箱格式不正确"
	msgMemberPhone     = "%s的手机号格式不正确（需为大陆11位且以1开头）"
	msgTeamNameTaken   = "团队名称已被使用"
	msgDeadlineClosed  = "报名已截止（截止时间：%s）"
)

// validateTeam checks the team part of a submission. in must already be trimmed.
func validateTeam(in entities.TeamInput) *domainerrors.AppError {
	if in.TeamName == "" || in.CompetitionTrack == "" || in.ProjectName == "" || in.CostrictUID == "" {
		return domainerrors.Validation(msgTeamRequired)
	}
	if !entities.CompetitionTrack(in.CompetitionTrack).Valid() {
		return domainerrors.Validation(msgTrackInvalid)
	}

	texts := []struct {
		label string
		value string
	}{
		{"项目简介", in.ProjectIntro},
		{"技术方案", in.TechSolution},
		{"目标与展望", in.GoalsAndOutlook},
	}
	for _, text := range texts {
		if text.value == "" {
			continue
		}
		if n := utf8.RuneCountInString(text.value); n < minTextRunes || n > maxTextRunes {
			return domainerrors.Validation(fmt.Sprintf(msgTextLength, text.label))
		}
	}
	return nil
}

// validateMembers checks the member list of a submission, reporting the
// first failing member by its 1-based position. members must be trimmed.
func validateMembers(members []entities.MemberInput) *domainerrors.AppError {
	if len(members) == 0 {
		return domainerrors.Validation(msgMembersRequired)
	}

	hasCaptain := false
	for _, m := range members {
		if m.IsCaptain {
			hasCaptain = true
			break
		}
	}
	if !hasCaptain {
		return domainerrors.Validation(msgCaptainRequired)
	}

	for i, m := range members {
		if appErr := validateMember(fmt.Sprintf("成员%d", i+1), m); appErr != nil {
			return appErr
		}
	}
	return nil
}

// validateMember checks required fields, then email, then phone.
func validateMember(label string, m entities.MemberInput) *domainerrors.AppError {
	if m.Name == "" || m.School == "" || m.Department == "" || m.MajorGrade == "" ||
		m.Phone == "" || m.Email == "" || m.Role == "" {
		return domainerrors.Validation(fmt.Sprintf(msgMemberRequired, label))
	}
	if !emailPattern.MatchString(m.Email) {
		return domainerrors.Validation(fmt.Sprintf(msgMemberEmail, label))
	}
	if !phonePattern.MatchString(m.Phone) {
		return domainerrors.Validation(fmt.Sprintf(msgMemberPhone, label))
	}
	return nil
}

func trimMembers(members []entities.MemberInput) []entities.MemberInput {
	out := make([]entities.MemberInput, 0, len(members))
	for _, m := range members {
		out = append(out, m.Trimmed())
	}
	return out
}
