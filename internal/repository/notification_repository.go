package repository

import (
	"errors"

	"github.com/gehna-next/internal/constants"
	"github.com/gehna-next/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository 付款请求通知数据访问接口
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	ExistsPending(orderID, senderID uint) (bool, error)
	CountUnreadForSender(senderID uint) (int64, error)
	CountUnreadForReceiver(receiverID uint) (int64, error)
	List(filter NotificationListFilter) ([]models.Notification, int64, error)
	Update(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormNotificationRepository
}

// GormNotificationRepository GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormNotificationRepository) WithTx(tx *gorm.DB) *GormNotificationRepository {
	if tx == nil {
		return r
	}
	return &GormNotificationRepository{db: tx}
}

// Create 创建通知
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByID 根据 ID 获取通知
func (r *GormNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Preload("Order").First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

// ExistsPending 判断发送人对该订单是否已有待处理请求
func (r *GormNotificationRepository) ExistsPending(orderID, senderID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Notification{}).
		Where("order_id = ? AND sender_id = ? AND status = ?", orderID, senderID, constants.NotificationStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountUnreadForSender 统计发送人未读回执数
func (r *GormNotificationRepository) CountUnreadForSender(senderID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Notification{}).
		Where("sender_id = ? AND is_read = ?", senderID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnreadForReceiver 统计管理员未读请求数。
// 接收人集合存储为 JSON，成员判断在内存中完成。
func (r *GormNotificationRepository) CountUnreadForReceiver(receiverID uint) (int64, error) {
	var unread []models.Notification
	if err := r.db.
		Where("is_admin_read = ?", false).
		Find(&unread).Error; err != nil {
		return 0, err
	}
	var count int64
	for _, n := range unread {
		if n.ReceiverIDs.Contains(receiverID) {
			count++
		}
	}
	return count, nil
}

// List 查询通知列表。
// ReceiverID 过滤在内存中完成，接收人集合存储为 JSON。
func (r *GormNotificationRepository) List(filter NotificationListFilter) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{})
	if filter.OrderID > 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.SenderID > 0 {
		query = query.Where("sender_id = ?", filter.SenderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UnreadOnly {
		query = query.Where("is_admin_read = ?", false)
	}

	if filter.ReceiverID > 0 {
		var all []models.Notification
		if err := query.Preload("Order").Order("id desc").Find(&all).Error; err != nil {
			return nil, 0, err
		}
		var matched []models.Notification
		for _, n := range all {
			if n.ReceiverIDs.Contains(filter.ReceiverID) {
				matched = append(matched, n)
			}
		}
		total := int64(len(matched))
		if filter.PageSize > 0 {
			page := filter.Page
			if page < 1 {
				page = 1
			}
			start := (page - 1) * filter.PageSize
			if start > len(matched) {
				start = len(matched)
			}
			end := start + filter.PageSize
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[start:end]
		}
		return matched, total, nil
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	if err := applyPagination(query.Preload("Order").Order("id desc"), filter.Page, filter.PageSize).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// Update 更新通知
func (r *GormNotificationRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Updates(updates).Error
}
