package service

import (
	"fmt"
	"time"

	slackapi "github.com/slack-go/slack"
	"jubilee/internal/domain"
	"jubilee/internal/token"
)

const defaultAvatarURL = "https://api.slack.com/img/blocks/bkb_template_images/palmtree.png"

func buildInviteMessage(emp domain.Employee, kind domain.EventKind, eventDate time.Time, years int) (string, []slackapi.Block) {
	var headline string
	switch kind {
	case domain.EventBirthday:
		headline = fmt.Sprintf("Hi %s! :birthday: Tomorrow (%s) is your birthday.", emp.DisplayName, eventDate.Format("January 2"))
	default:
		headline = fmt.Sprintf("Hi %s! :tada: Tomorrow (%s) you complete %s at the company.", emp.DisplayName, eventDate.Format("January 2"), pluralYears(years))
	}

	question := "Would you like a shout-out in the celebration channel? If you opt in, you can also pick a gift."

	approveToken := token.Action{Kind: token.KindApprove, EmployeeCode: emp.Code, Date: eventDate}.Encode()
	declineToken := token.Action{Kind: token.KindDecline, EmployeeCode: emp.Code, Date: eventDate}.Encode()

	approveBtn := slackapi.NewButtonBlockElement(approveToken, "approve",
		slackapi.NewTextBlockObject(slackapi.PlainTextType, "Celebrate me!", true, false))
	approveBtn.Style = slackapi.StylePrimary

	declineBtn := slackapi.NewButtonBlockElement(declineToken, "decline",
		slackapi.NewTextBlockObject(slackapi.PlainTextType, "No thanks", true, false))

	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType, headline+"\n"+question, false, false), nil, nil),
		slackapi.NewActionBlock("invite_actions", approveBtn, declineBtn),
	}

	return headline, blocks
}

func buildGiftPicker(employeeCode string, eventDate time.Time, gifts []domain.Gift) (string, []slackapi.Block) {
	fallback := "Great! Pick a gift for your celebration."

	pickToken := token.Action{Kind: token.KindSelectGift, EmployeeCode: employeeCode, Date: eventDate}.Encode()

	options := make([]*slackapi.OptionBlockObject, 0, len(gifts))
	for _, g := range gifts {
		options = append(options, slackapi.NewOptionBlockObject(
			g.ID,
			slackapi.NewTextBlockObject(slackapi.PlainTextType, g.DisplayName, false, false),
			nil,
		))
	}

	picker := slackapi.NewOptionsSelectBlockElement(
		slackapi.OptTypeStatic,
		slackapi.NewTextBlockObject(slackapi.PlainTextType, "Choose a gift", false, false),
		pickToken,
		options...,
	)

	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType, ":gift: "+fallback, false, false), nil, nil),
		slackapi.NewActionBlock("gift_picker", picker),
	}

	return fallback, blocks
}

func buildGiftConfirmPrompt(employeeCode string, eventDate time.Time, giftID, giftName string) (string, []slackapi.Block) {
	fallback := fmt.Sprintf("You picked %s. Confirm?", giftName)

	confirmToken := token.Action{Kind: token.KindConfirmGift, EmployeeCode: employeeCode, Date: eventDate, GiftID: giftID}.Encode()
	retryToken := token.Action{Kind: token.KindRetryGift, EmployeeCode: employeeCode, Date: eventDate}.Encode()

	confirmBtn := slackapi.NewButtonBlockElement(confirmToken, "confirm",
		slackapi.NewTextBlockObject(slackapi.PlainTextType, "Confirm", true, false))
	confirmBtn.Style = slackapi.StylePrimary

	retryBtn := slackapi.NewButtonBlockElement(retryToken, "retry",
		slackapi.NewTextBlockObject(slackapi.PlainTextType, "Pick another", true, false))

	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("You picked *%s*. Lock it in?", giftName), false, false), nil, nil),
		slackapi.NewActionBlock("gift_confirm", confirmBtn, retryBtn),
	}

	return fallback, blocks
}

func buildDeclineAck() (string, []slackapi.Block) {
	fallback := "No problem, we'll keep it quiet."

	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType,
			"No problem, we'll keep it quiet. :shushing_face: Enjoy your day anyway!", false, false), nil, nil),
	}

	return fallback, blocks
}

func buildGiftConfirmedAck(giftName string) (string, []slackapi.Block) {
	fallback := fmt.Sprintf("All set! Your gift: %s", giftName)

	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("All set! :gift: Your gift: *%s*. See you in the celebration channel!", giftName), false, false), nil, nil),
	}

	return fallback, blocks
}

func buildCelebrationMessage(emp domain.Employee, rec domain.ResponseRecord, gift *domain.Gift, years int, avatarURL string) (string, []slackapi.Block) {
	mention := emp.DisplayName
	if emp.SlackUserID != "" {
		mention = fmt.Sprintf("<@%s>", emp.SlackUserID)
	}

	var headline string
	if rec.EventKind == domain.EventBirthday {
		headline = fmt.Sprintf(":birthday: Happy birthday, %s! Have a fantastic day!", mention)
	} else {
		headline = fmt.Sprintf(":tada: Congratulations %s on %s with us!", mention, pluralYears(years))
	}

	if avatarURL == "" {
		avatarURL = defaultAvatarURL
	}

	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType, headline, false, false), nil, nil),
		slackapi.NewImageBlock(avatarURL, "celebrant avatar", "celebrant_avatar", nil),
	}

	if gift != nil {
		giftText := fmt.Sprintf("Gift of choice: *%s*", gift.DisplayName)
		if gift.Link != "" {
			giftText = fmt.Sprintf("Gift of choice: <%s|%s>", gift.Link, gift.DisplayName)
		}
		blocks = append(blocks, slackapi.NewContextBlock("celebration_gift",
			slackapi.NewTextBlockObject(slackapi.MarkdownType, giftText, false, false)))
	}

	return headline, blocks
}

func pluralYears(years int) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}
