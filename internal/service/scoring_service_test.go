package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"fantaprof/backend/internal/model"
)

func newTestScoringService(env *testEnv) ScoringService {
	achv := NewAchievementService(testConfig(), env.repo, env.pub, zap.NewNop())
	return NewScoringService(env.repo, env.pub, achv, zap.NewNop())
}

// seedTeam 准备一名用户及带队长的 5 人队伍，返回用户、队长与普通成员
func seedTeam(t *testing.T, env *testEnv) (owner *model.User, captain, regular *model.Professor) {
	t.Helper()
	ctx := context.Background()

	owner = &model.User{Username: "proprietario", Email: "p@example.com", PasswordHash: "x", Role: model.RoleUser}
	if err := env.userRepo.Create(ctx, owner); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	profs := make([]*model.Professor, 5)
	names := []string{"Rossi", "Bianchi", "Verdi", "Neri", "Gialli"}
	for i := range profs {
		profs[i] = &model.Professor{Name: "Prof. " + names[i], Cost: 20}
		if err := env.profRepo.Create(ctx, profs[i]); err != nil {
			t.Fatalf("创建教授失败: %v", err)
		}
	}

	team := &model.Team{Name: "I Fuoriclasse", UserID: owner.ID}
	roster := make([]model.TeamProfessor, 5)
	for i, p := range profs {
		roster[i] = model.TeamProfessor{ProfessorID: p.ID, IsCaptain: i == 0}
	}
	if err := env.teamRepo.CreateWithRoster(ctx, team, roster); err != nil {
		t.Fatalf("创建队伍失败: %v", err)
	}
	return owner, profs[0], profs[1]
}

func TestApplyEvent_UnknownCode(t *testing.T) {
	env := newTestEnv()
	svc := newTestScoringService(env)

	_, err := svc.ApplyEvent(context.Background(), 1, 1, "evento_inventato")
	if !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("未知事件应返回 ErrUnknownEvent，得到: %v", err)
	}
}

func TestApplyEvent_CaptainNotificationDoubled(t *testing.T) {
	env := newTestEnv()
	svc := newTestScoringService(env)
	ctx := context.Background()

	owner, captain, _ := seedTeam(t, env)

	// assenza 为 +20，队长计 40
	result, err := svc.ApplyEvent(ctx, 99, captain.ID, "assenza")
	if err != nil {
		t.Fatalf("ApplyEvent 失败: %v", err)
	}
	if result.Professor.Score != 20 {
		t.Errorf("教授本体分数应为 20，得到 %d", result.Professor.Score)
	}
	if result.Event.Code != "assenza" || result.Event.Points != 20 {
		t.Errorf("事件回显不匹配: %+v", result.Event)
	}

	notifications := env.ntfRepo.forUser(owner.ID)
	var scoreNtf *model.Notification
	for _, n := range notifications {
		if n.Type == model.NotificationTypeScore {
			scoreNtf = n
		}
	}
	if scoreNtf == nil {
		t.Fatal("队伍拥有者应收到计分通知")
	}
	if !strings.Contains(scoreNtf.Message, "+40") {
		t.Errorf("队长事件通知应为 2 倍分值 +40，消息: %s", scoreNtf.Message)
	}
	if !strings.Contains(scoreNtf.Message, "capitano") {
		t.Errorf("队长通知应注明 capitano，消息: %s", scoreNtf.Message)
	}
	if data, ok := scoreNtf.Data["points"].(int); !ok || data != 40 {
		t.Errorf("通知 data.points 应为 40，得到: %v", scoreNtf.Data["points"])
	}
}

func TestApplyEvent_RegularMemberNotDoubled(t *testing.T) {
	env := newTestEnv()
	svc := newTestScoringService(env)
	ctx := context.Background()

	owner, _, regular := seedTeam(t, env)

	if _, err := svc.ApplyEvent(ctx, 99, regular.ID, "non_mette_nota"); err != nil {
		t.Fatalf("ApplyEvent 失败: %v", err)
	}

	notifications := env.ntfRepo.forUser(owner.ID)
	var scoreNtf *model.Notification
	for _, n := range notifications {
		if n.Type == model.NotificationTypeScore {
			scoreNtf = n
		}
	}
	if scoreNtf == nil {
		t.Fatal("队伍拥有者应收到计分通知")
	}
	if scoreNtf.Title != "📉 Punti Persi!" {
		t.Errorf("负分事件标题应为 Punti Persi，得到: %s", scoreNtf.Title)
	}
	if !strings.Contains(scoreNtf.Message, "-100") {
		t.Errorf("普通成员分值不翻倍，消息应含 -100: %s", scoreNtf.Message)
	}
}

func TestApplyEvent_BroadcastAndUserPush(t *testing.T) {
	env := newTestEnv()
	svc := newTestScoringService(env)
	ctx := context.Background()

	owner, captain, _ := seedTeam(t, env)

	if _, err := svc.ApplyEvent(ctx, 99, captain.ID, "risata"); err != nil {
		t.Fatalf("ApplyEvent 失败: %v", err)
	}

	broadcasts := env.pub.byEvent("professor-score-changed")
	if len(broadcasts) != 1 {
		t.Fatalf("应有 1 次全局广播，得到 %d", len(broadcasts))
	}
	if broadcasts[0].scope != "global" {
		t.Errorf("professor-score-changed 应为全局广播，得到 scope=%s", broadcasts[0].scope)
	}

	updates := env.pub.byEvent("score-update")
	if len(updates) != 1 {
		t.Fatalf("应有 1 次定向推送，得到 %d", len(updates))
	}
	if updates[0].scope != "user" || updates[0].targetID != owner.ID {
		t.Errorf("score-update 应定向到拥有者 %d，得到 scope=%s target=%d",
			owner.ID, updates[0].scope, updates[0].targetID)
	}
}

func TestApplyEvent_ScoreAchievementUnlockedOnce(t *testing.T) {
	env := newTestEnv()
	svc := newTestScoringService(env)
	ctx := context.Background()

	env.achvRepo.seed(model.Achievement{
		Code:           "score_100",
		Name:           "Centurione",
		ConditionType:  model.CondTotalScore,
		ConditionValue: 100,
		Points:         30,
	})

	owner, captain, _ := seedTeam(t, env)

	// 队长 +20 → 总分 40，未达标
	if _, err := svc.ApplyEvent(ctx, 99, captain.ID, "assenza"); err != nil {
		t.Fatalf("ApplyEvent 失败: %v", err)
	}
	if n, _ := env.achvRepo.CountUnlockedByUser(ctx, owner.ID); n != 0 {
		t.Fatalf("总分 40 不应解锁成就，得到 %d", n)
	}

	// 队长 +50 → 总分 140，达标
	if _, err := svc.ApplyEvent(ctx, 99, captain.ID, "mette_10"); err != nil {
		t.Fatalf("ApplyEvent 失败: %v", err)
	}
	if n, _ := env.achvRepo.CountUnlockedByUser(ctx, owner.ID); n != 1 {
		t.Fatalf("总分 140 应解锁 score_100，得到 %d", n)
	}

	// 再计一次分，成就不重复解锁、通知不重复发
	if _, err := svc.ApplyEvent(ctx, 99, captain.ID, "risata"); err != nil {
		t.Fatalf("ApplyEvent 失败: %v", err)
	}
	if n, _ := env.achvRepo.CountUnlockedByUser(ctx, owner.ID); n != 1 {
		t.Fatalf("成就解锁应幂等，得到 %d", n)
	}

	var achvNtf int
	for _, n := range env.ntfRepo.forUser(owner.ID) {
		if n.Type == model.NotificationTypeAchievement {
			achvNtf++
		}
	}
	if achvNtf != 1 {
		t.Errorf("成就通知应恰好 1 条，得到 %d", achvNtf)
	}
	if pushes := env.pub.byEvent("achievement"); len(pushes) != 1 {
		t.Errorf("成就推送应恰好 1 次，得到 %d", len(pushes))
	}
}
