// Package adapters はcontactsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"contact_backend/internal/feature/contacts/domain/entity"
	"contact_backend/internal/feature/contacts/usecase"
)

// contactMySQL はContactRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type contactMySQL struct {
	db *gorm.DB
}

// contactMySQLがContactRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ContactRepository = (*contactMySQL)(nil)

// NewContactMySQL は指定されたgorm.DB接続でcontactMySQLの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewContactMySQL(db *gorm.DB) *contactMySQL {
	return &contactMySQL{db: db}
}

// ownedBy is the single ownership filter every query goes through.
// Keeping it in one place means no operation can forget the user_id
// conjunction that isolates one user's contacts from another's.
func ownedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Create は連絡先をデータベースに追加し、生成されたIDをエンティティに書き戻します。
func (r *contactMySQL) Create(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// FindByOwner はユーザーの連絡先をlimit/offsetで取得します。
// 明示的なORDER BYは付けず、ストアの自然な行順をそのまま返します。
func (r *contactMySQL) FindByOwner(ctx context.Context, userID uint, limit, offset int) ([]entity.Contact, error) {
	var contacts []entity.Contact
	if err := r.db.WithContext(ctx).
		Scopes(ownedBy(userID)).
		Limit(limit).
		Offset(offset).
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByID はIDと所有者の両方で絞り込んだポイントルックアップです。
// 一致する行がない場合、usecase.ErrContactNotFoundを返します。
func (r *contactMySQL) FindByID(ctx context.Context, id, userID uint) (*entity.Contact, error) {
	var contact entity.Contact
	if err := r.db.WithContext(ctx).
		Scopes(ownedBy(userID)).
		Where("id = ?", id).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// Update は所有者スコープで行を検索し、可変フィールドをすべて上書きします。
// 行が存在しない場合は何も作成せずusecase.ErrContactNotFoundを返します。
// 検索と保存は単一トランザクション内で実行されます。
func (r *contactMySQL) Update(ctx context.Context, id, userID uint, in usecase.ContactInput) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(ownedBy(userID)).Where("id = ?", id).First(&contact).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrContactNotFound
			}
			return err
		}

		contact.FirstName = in.FirstName
		contact.LastName = in.LastName
		contact.Email = in.Email
		contact.PhoneNumber = in.PhoneNumber
		contact.Birthday = in.Birthday
		contact.AdditionalInfo = in.AdditionalInfo

		return tx.Save(&contact).Error
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Delete は所有者スコープで行を検索し、物理削除して削除前の状態を返します。
// ソフトデリートは行いません。
func (r *contactMySQL) Delete(ctx context.Context, id, userID uint) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(ownedBy(userID)).Where("id = ?", id).First(&contact).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrContactNotFound
			}
			return err
		}
		return tx.Delete(&contact).Error
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Search はfirst_name/last_name/emailのいずれかにqueryを部分一致で含む
// ユーザーの連絡先を返します。マッチングはストアネイティブのLIKEです。
// OR句はグループ化して所有者フィルタとANDで結合します。
func (r *contactMySQL) Search(ctx context.Context, userID uint, query string) ([]entity.Contact, error) {
	pattern := "%" + query + "%"
	var contacts []entity.Contact
	if err := r.db.WithContext(ctx).
		Scopes(ownedBy(userID)).
		Where(
			r.db.Where("first_name LIKE ?", pattern).
				Or("last_name LIKE ?", pattern).
				Or("email LIKE ?", pattern),
		).
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// AllByOwner はユーザーの連絡先をすべて返します。誕生日ウィンドウの入力用です。
func (r *contactMySQL) AllByOwner(ctx context.Context, userID uint) ([]entity.Contact, error) {
	var contacts []entity.Contact
	if err := r.db.WithContext(ctx).
		Scopes(ownedBy(userID)).
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}
