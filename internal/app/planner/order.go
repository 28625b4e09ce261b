package planner

import "github.com/John-Robertt/chrononame/internal/domain"

// SelectionSort 按 Stamp 升序原地排序（选择排序）。
//
// 每一轮在 [i, n) 中取“最左边的最小值”（严格小于才替换），再与位置 i 交换。
// 时间相同的文件的相对顺序由这个选择过程决定，输出需要逐字节可复现，
// 所以这里不能换成 sort.SliceStable：两者在时间相同且发生过交换时结果不同。
func SelectionSort(inv domain.Inventory) {
	for i := range inv {
		min := i
		for j := i; j < len(inv); j++ {
			if inv[j].Stamp < inv[min].Stamp {
				min = j
			}
		}
		inv[i], inv[min] = inv[min], inv[i]
	}
}
