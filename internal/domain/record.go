package domain

// FileRecord 描述扫描得到的一个普通文件（只做 stat，不读内容）。
//
// 不变量：
// - Name 是目录内的原始文件名（含扩展名），不含路径
// - Stamp = min(创建时间, 修改时间)，Unix 秒，亚秒部分截断
type FileRecord struct {
	Name  string
	Stamp int64
}

// Inventory 是一次扫描的结果，顺序与目录列举顺序一致（不保证字典序）。
// 名称与时间放在同一条记录里，排序时不可能错位。
type Inventory []FileRecord
