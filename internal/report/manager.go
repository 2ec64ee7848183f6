package report

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
	"github.com/vonggiunfa/pfjc-bi/internal/storage"
)

// Policy 表格行为策略
// 历史版本在这两个行为上互相矛盾，这里做成显式配置
type Policy struct {
	// KeepLastRow 删除时至少保留一行
	KeepLastRow bool
	// RequireSelection 编辑前必须先选中该行
	RequireSelection bool
}

// DefaultPolicy 默认策略：保留最后一行，允许自由编辑
func DefaultPolicy() Policy {
	return Policy{KeepLastRow: true, RequireSelection: false}
}

var (
	// ErrEmptySelection 未选择任何行
	ErrEmptySelection = errors.New("请先选择要删除的行")
	// ErrKeepLastRow 删除会清空整个表格
	ErrKeepLastRow = errors.New("至少保留一行数据")
	// ErrRowNotFound 行不存在
	ErrRowNotFound = errors.New("行不存在")
	// ErrNotSelected 行未选中（编辑门控开启时）
	ErrNotSelected = errors.New("请先选中该行再编辑")
	// ErrUnknownField 不可编辑的字段
	ErrUnknownField = errors.New("字段不可编辑")
)

// Manager 报表管理器：行集合与选择集的聚合根
// 请求是离散的事件回调，共享状态用读写锁保护
type Manager struct {
	mu       sync.RWMutex
	rows     []model.ReportRow
	selected map[string]bool
	kv       storage.KV
	policy   Policy
}

// NewManager 创建管理器并从存储加载数据
// 加载后对整个集合重算一遍，保证派生字段一致
func NewManager(kv storage.KV, policy Policy) *Manager {
	m := &Manager{
		kv:       kv,
		selected: make(map[string]bool),
		policy:   policy,
	}
	m.rows = RecalculateAll(storage.LoadRows(kv))
	return m
}

// Policy 当前策略
func (m *Manager) Policy() Policy {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.policy
}

// SetPolicy 更新策略
func (m *Manager) SetPolicy(p Policy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policy = p
}

// Rows 行集合的副本
func (m *Manager) Rows() []model.ReportRow {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.copyRowsLocked()
}

func (m *Manager) copyRowsLocked() []model.ReportRow {
	out := make([]model.ReportRow, len(m.rows))
	copy(out, m.rows)
	return out
}

// Status 行数、选中数与全选标记
// 全选 = 选中数等于行数且行数大于 0
func (m *Manager) Status() (rowCount, selectedCount int, selectAll bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rowCount = len(m.rows)
	selectedCount = len(m.selected)
	selectAll = rowCount > 0 && selectedCount == rowCount
	return
}

// SelectedIDs 当前选中的行 id
func (m *Manager) SelectedIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.selected))
	for _, r := range m.rows {
		if m.selected[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// AddRow 追加一条空白行并返回它
func (m *Manager) AddRow() model.ReportRow {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := model.NewRow()
	m.rows = append(m.rows, row)
	return row
}

// Select 选中或取消选中一行
func (m *Manager) Select(id string, selected bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOfLocked(id) < 0 {
		return ErrRowNotFound
	}
	if selected {
		m.selected[id] = true
	} else {
		delete(m.selected, id)
	}
	return nil
}

// SelectAll 全选或全不选
func (m *Manager) SelectAll(selected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.selected = make(map[string]bool)
	if selected {
		for _, r := range m.rows {
			m.selected[r.ID] = true
		}
	}
}

// EditField 按 id 更新可编辑字段
// 编辑同步落到内存状态；派生字段等到失焦提交时统一重算
func (m *Manager) EditField(id, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOfLocked(id)
	if i < 0 {
		return ErrRowNotFound
	}
	if m.policy.RequireSelection && !m.selected[id] {
		return ErrNotSelected
	}

	col, ok := columnByKey(key)
	if !ok || col.ReadOnly {
		return ErrUnknownField
	}

	if key == "people" {
		value = sanitizeNumberInput(value)
	}
	m.rows[i].Set(key, value)
	return nil
}

// SetDate 更新一行的日期
func (m *Manager) SetDate(id string, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOfLocked(id)
	if i < 0 {
		return ErrRowNotFound
	}
	if m.policy.RequireSelection && !m.selected[id] {
		return ErrNotSelected
	}
	m.rows[i].Date = date
	return nil
}

// Commit 失焦提交：重算一行的派生字段并返回结果
func (m *Manager) Commit(id string) (model.ReportRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOfLocked(id)
	if i < 0 {
		return model.ReportRow{}, ErrRowNotFound
	}
	m.rows[i] = Recalculate(m.rows[i])
	return m.rows[i], nil
}

// DeleteSelected 删除选中的行，返回删除数量
func (m *Manager) DeleteSelected() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.selected) == 0 {
		return 0, ErrEmptySelection
	}
	if m.policy.KeepLastRow && len(m.rows) <= len(m.selected) {
		return 0, ErrKeepLastRow
	}

	kept := make([]model.ReportRow, 0, len(m.rows))
	deleted := 0
	for _, r := range m.rows {
		if m.selected[r.ID] {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	m.selected = make(map[string]bool)
	return deleted, nil
}

// NeedsConfirm 整体替换是否需要用户确认
// 当前集合只有一条空白行时不需要
func (m *Manager) NeedsConfirm() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.rows) > 1 {
		return true
	}
	if len(m.rows) == 1 {
		r := m.rows[0]
		return r.Total != "" || r.Wechat != ""
	}
	return false
}

// ReplaceAll 整体替换行集合（导入/模拟数据）
// 替换后重算每一行、清空选择集并立即持久化
func (m *Manager) ReplaceAll(rows []model.ReportRow) ([]model.ReportRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = RecalculateAll(rows)
	m.selected = make(map[string]bool)

	saved, err := storage.SaveRows(m.kv, m.rows)
	if err != nil {
		return m.copyRowsLocked(), err
	}
	m.rows = saved
	return m.copyRowsLocked(), nil
}

// Save 将当前集合写入存储
// 集合为空时退化为单条默认行
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved, err := storage.SaveRows(m.kv, m.rows)
	if err != nil {
		return err
	}
	m.rows = saved
	return nil
}

// ExportRows 导出范围：有选中取选中，否则全部
func (m *Manager) ExportRows() []model.ReportRow {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.selected) == 0 {
		return m.copyRowsLocked()
	}
	out := make([]model.ReportRow, 0, len(m.selected))
	for _, r := range m.rows {
		if m.selected[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// ScopeRows 图表范围：selected 时取选中行，否则全部
func (m *Manager) ScopeRows(selectedOnly bool) []model.ReportRow {
	if !selectedOnly {
		return m.Rows()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.ReportRow, 0, len(m.selected))
	for _, r := range m.rows {
		if m.selected[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func (m *Manager) indexOfLocked(id string) int {
	for i, r := range m.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func columnByKey(key string) (model.Column, bool) {
	for _, c := range model.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return model.Column{}, false
}

// sanitizeNumberInput 人数输入：只留数字和一个小数点
func sanitizeNumberInput(value string) string {
	var b strings.Builder
	dotSeen := false
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dotSeen:
			dotSeen = true
			b.WriteRune(r)
		}
	}
	return b.String()
}
