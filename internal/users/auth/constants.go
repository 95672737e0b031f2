// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32
)

// # Localized Messages (Authentication)

// Authentication failures are returned in Arabic; this matches the platform's
// bilingual UI where login flows are Arabic-first and catalogue management is
// English. A single generic credentials message is used for unknown username,
// wrong password, and deactivated accounts alike, to prevent user enumeration.
const (
	MsgInvalidCredentials = "اسم المستخدم أو كلمة المرور غير صحيحة"
	MsgInvalidSession     = "جلسة غير صالحة أو منتهية الصلاحية"
	MsgMissingSession     = "لا توجد جلسة نشطة"
	MsgWrongCurrentPass   = "كلمة المرور الحالية غير صحيحة"
	MsgInvalidResetToken  = "رمز إعادة التعيين غير صالح أو منتهي الصلاحية"
	MsgPasswordChanged    = "تم تغيير كلمة المرور بنجاح"
	MsgPasswordReset      = "تم تحديث كلمة المرور بنجاح"
	MsgResetLinkSent      = "إذا كان البريد الإلكتروني مسجلاً لدينا فسيصلك رابط إعادة التعيين"
	MsgTokenRevoked       = "تم إلغاء الرمز"
)

// MsgDuplicateIdentity is returned when an insert loses the uniqueness
// race after the service-level pre-check passed.
const MsgDuplicateIdentity = "Username or email is already in use"
