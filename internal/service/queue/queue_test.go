package queue

import (
	"context"
	"testing"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/pkg/isolation"
	"gitee.com/flycash/order-notifier/internal/repository"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
	testioc "gitee.com/flycash/order-notifier/internal/test/ioc"
	"github.com/sony/sonyflake"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) repository.JobRepository {
	t.Helper()
	db := testioc.InitDB()
	require.NoError(t, dao.InitTables(db))
	gw := isolation.NewGateway(db, dao.GlobalEntities()...)
	return repository.NewJobRepository(dao.NewJobDAO(gw))
}

func newIDGen() *sonyflake.Sonyflake {
	return sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		MachineID: func() (uint16, error) {
			return 1, nil
		},
	})
}

func newService(repo repository.JobRepository) *service {
	svc := NewService(repo, newIDGen()).(*service)
	svc.now = func() time.Time { return t0 }
	return svc
}

func smsJob(phone string) domain.Job {
	return domain.Job{
		Channel:   domain.ChannelSMS,
		Recipient: phone,
		Message:   "주문이 접수되었습니다",
	}
}

func statusOf(t *testing.T, repo repository.JobRepository, ctx context.Context, id uint64) domain.Job {
	t.Helper()
	job, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	return job
}
