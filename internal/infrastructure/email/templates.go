package email

import (
	"fmt"
	"html"
	"strings"
)

const layout = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 10px;">
<h2 style="color: #4F46E5; text-align: center;">%s</h2>
%s
</div>`

func OTP(to, code string) Message {
	body := fmt.Sprintf(`<p style="font-size: 16px; color: #374151;">Use the following verification code to complete your registration:</p>
<div style="text-align: center; margin: 30px 0;"><span style="font-size: 32px; font-weight: bold; letter-spacing: 5px;">%s</span></div>
<p style="font-size: 14px; color: #6B7280; text-align: center;">This code will expire in 10 minutes.</p>`, html.EscapeString(code))

	return Message{
		To:      to,
		Subject: "Your SkillSync Verification Code",
		HTML:    fmt.Sprintf(layout, "Welcome to SkillSync", body),
		Text:    "Your SkillSync verification code is " + code + ". It expires in 10 minutes.",
	}
}

func PasswordReset(to, frontendURL, token string) Message {
	link := strings.TrimRight(frontendURL, "/") + "/reset-password?token=" + token
	body := fmt.Sprintf(`<p style="font-size: 16px; color: #374151;">We received a request to reset your password. Click the button below to proceed:</p>
<div style="text-align: center; margin: 30px 0;"><a href="%s" style="background-color: #000000; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 5px;">Reset Password</a></div>
<p style="font-size: 14px; color: #6B7280;">If you didn't request this, you can safely ignore this email.</p>`, html.EscapeString(link))

	return Message{
		To:      to,
		Subject: "Reset Your SkillSync Password",
		HTML:    fmt.Sprintf(layout, "Password Reset Request", body),
		Text:    "Reset your SkillSync password: " + link,
	}
}

func RecruiterMessage(to, name, message string) Message {
	body := fmt.Sprintf(`<p style="font-size: 16px; color: #374151;">Hi %s,</p>
<p style="font-size: 16px; color: #374151;">%s</p>`, html.EscapeString(name), html.EscapeString(message))

	return Message{
		To:      to,
		ToName:  name,
		Subject: "New message from a recruiter on SkillSync",
		HTML:    fmt.Sprintf(layout, "You have a new message", body),
		Text:    message,
	}
}

func InterviewInvite(to, date, at, kind, notes string) Message {
	body := fmt.Sprintf(`<p style="font-size: 16px; color: #374151;">You have been invited to a %s interview.</p>
<p style="font-size: 16px; color: #374151;"><strong>Date:</strong> %s<br><strong>Time:</strong> %s</p>
<p style="font-size: 14px; color: #6B7280;">%s</p>`,
		html.EscapeString(kind), html.EscapeString(date), html.EscapeString(at), html.EscapeString(notes))

	return Message{
		To:      to,
		Subject: "Interview Invitation from SkillSync",
		HTML:    fmt.Sprintf(layout, "Interview Scheduled", body),
		Text:    fmt.Sprintf("Interview (%s) on %s at %s. %s", kind, date, at, notes),
	}
}
